package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gapfarm/portal/api/internal/address"
	"github.com/gapfarm/portal/api/internal/models"
	"github.com/gapfarm/portal/api/internal/wizard"
)

func testAddressDataset(t *testing.T) *address.Dataset {
	t.Helper()
	ds, err := address.Load()
	require.NoError(t, err)
	return ds
}

func newTestRegistrationService(t *testing.T, farmers *mockFarmerRepository, users *mockUserRepository) RegistrationService {
	t.Helper()
	return NewRegistrationService(farmers, users, testAddressDataset(t), wizard.NewStore(time.Hour), testLogger())
}

func validRegisterInput() RegisterFarmerInput {
	return RegisterFarmerInput{
		Email:       "farmer@example.com",
		Password:    "password123",
		NamePrefix:  "นาย",
		FirstName:   "Somchai",
		LastName:    "Jaidee",
		CitizenID:   "1-2345-67890-12-3",
		HouseNo:     "99/1",
		Province:    "สงขลา",
		District:    "หาดใหญ่",
		Subdistrict: "คอหงส์",
		Mobile:      "081-234-5678",
		Moo:         4,
	}
}

func TestRegister_StripsDashesAndDerivesZip(t *testing.T) {
	farmers := new(mockFarmerRepository)
	users := new(mockUserRepository)

	users.On("FindByEmail", mock.Anything, "farmer@example.com").Return(nil, nil)
	farmers.On("ExistsByCitizenID", mock.Anything, "1234567890123").Return(false, nil)
	farmers.On("Create", mock.Anything, mock.AnythingOfType("*models.User"), mock.AnythingOfType("*models.Farmer")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 10
			args.Get(2).(*models.Farmer).ID = 20
		}).
		Return(nil)

	svc := newTestRegistrationService(t, farmers, users)

	farmer, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	assert.Equal(t, "1234567890123", farmer.CitizenID)
	assert.Equal(t, "0812345678", farmer.Mobile)
	// Zip code comes from the reference dataset for the matched sub-district.
	assert.Equal(t, "90110", farmer.ZipCode)
	farmers.AssertExpectations(t)
}

func TestRegister_DerivedZipOverridesClientValue(t *testing.T) {
	farmers := new(mockFarmerRepository)
	users := new(mockUserRepository)

	users.On("FindByEmail", mock.Anything, "farmer@example.com").Return(nil, nil)
	farmers.On("ExistsByCitizenID", mock.Anything, "1234567890123").Return(false, nil)
	farmers.On("Create", mock.Anything, mock.AnythingOfType("*models.User"), mock.AnythingOfType("*models.Farmer")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 10
			args.Get(2).(*models.Farmer).ID = 20
		}).
		Return(nil)

	svc := newTestRegistrationService(t, farmers, users)

	// The dataset resolves the address, so a wrong client zip is replaced.
	input := validRegisterInput()
	input.Province = "ระยอง"
	input.District = "เมืองระยอง"
	input.Subdistrict = "ท่าประดู่"
	input.ZipCode = "99999"

	farmer, err := svc.Register(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "21000", farmer.ZipCode)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	farmers := new(mockFarmerRepository)
	users := new(mockUserRepository)
	users.On("FindByEmail", mock.Anything, "farmer@example.com").Return(&models.User{ID: 1}, nil)

	svc := newTestRegistrationService(t, farmers, users)

	_, err := svc.Register(context.Background(), validRegisterInput())
	assert.ErrorIs(t, err, ErrEmailTaken)
	farmers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegister_DuplicateCitizenID(t *testing.T) {
	farmers := new(mockFarmerRepository)
	users := new(mockUserRepository)
	users.On("FindByEmail", mock.Anything, "farmer@example.com").Return(nil, nil)
	farmers.On("ExistsByCitizenID", mock.Anything, "1234567890123").Return(true, nil)

	svc := newTestRegistrationService(t, farmers, users)

	_, err := svc.Register(context.Background(), validRegisterInput())
	assert.ErrorIs(t, err, ErrCitizenIDTaken)
}

func TestDraftFlow_GateRejectsWeakPassword(t *testing.T) {
	svc := newTestRegistrationService(t, new(mockFarmerRepository), new(mockUserRepository))

	draft := svc.StartDraft()

	_, errs, err := svc.Next(draft.ID, map[string]interface{}{
		"email":    "farmer@example.com",
		"password": "short",
	})
	require.NoError(t, err)
	require.Contains(t, errs, "password")

	reloaded, err := svc.Draft(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Step)

	// A missing password field fails the same gate, not just a short one.
	_, errs, err = svc.Next(draft.ID, map[string]interface{}{
		"password": "",
	})
	require.NoError(t, err)
	require.Contains(t, errs, "password")
}

func TestDraftFlow_GateBlocksInvalidStep(t *testing.T) {
	svc := newTestRegistrationService(t, new(mockFarmerRepository), new(mockUserRepository))

	draft := svc.StartDraft()
	require.Equal(t, 1, draft.Step)

	// Invalid email keeps the draft on step 1.
	_, errs, err := svc.Next(draft.ID, map[string]interface{}{
		"email":    "not-an-email",
		"password": "password123",
	})
	require.NoError(t, err)
	require.Contains(t, errs, "email")

	reloaded, err := svc.Draft(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Step)
	// The rejected fields are still retained.
	assert.Equal(t, "not-an-email", reloaded.String("email"))

	// Fixing the email advances to step 2.
	advanced, errs, err := svc.Next(draft.ID, map[string]interface{}{
		"email": "farmer@example.com",
	})
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, 2, advanced.Step)
}

func TestDraftFlow_SubmitRegistersAndDiscardsDraft(t *testing.T) {
	farmers := new(mockFarmerRepository)
	users := new(mockUserRepository)
	users.On("FindByEmail", mock.Anything, "farmer@example.com").Return(nil, nil)
	farmers.On("ExistsByCitizenID", mock.Anything, "1234567890123").Return(false, nil)
	farmers.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newTestRegistrationService(t, farmers, users)
	draft := svc.StartDraft()

	steps := []map[string]interface{}{
		{"email": "farmer@example.com", "password": "password123"},
		{"firstName": "Somchai", "lastName": "Jaidee", "identificationNumber": "1-2345-67890-12-3"},
		{"houseNo": "99/1", "moo": 4, "province": "สงขลา", "district": "หาดใหญ่", "subDistrict": "คอหงส์"},
		{"mobilePhoneNumber": "0812345678"},
	}
	for _, fields := range steps {
		_, errs, err := svc.Next(draft.ID, fields)
		require.NoError(t, err)
		require.Empty(t, errs)
	}

	farmer, errs, err := svc.Submit(context.Background(), draft.ID)
	require.NoError(t, err)
	require.Empty(t, errs)
	require.NotNil(t, farmer)
	assert.Equal(t, "1234567890123", farmer.CitizenID)

	// The draft is gone after a successful submission.
	_, err = svc.Draft(draft.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestDraftFlow_FailedSubmitKeepsDraft(t *testing.T) {
	svc := newTestRegistrationService(t, new(mockFarmerRepository), new(mockUserRepository))
	draft := svc.StartDraft()

	// Only step 1 is filled; final validation must reject and keep the data.
	_, _, err := svc.Next(draft.ID, map[string]interface{}{
		"email":    "farmer@example.com",
		"password": "password123",
	})
	require.NoError(t, err)

	_, errs, err := svc.Submit(context.Background(), draft.ID)
	require.NoError(t, err)
	require.NotEmpty(t, errs)

	kept, err := svc.Draft(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "farmer@example.com", kept.String("email"))
}

func TestDraftFlow_JumpBackToCompletedStep(t *testing.T) {
	svc := newTestRegistrationService(t, new(mockFarmerRepository), new(mockUserRepository))
	draft := svc.StartDraft()

	_, errs, err := svc.Next(draft.ID, map[string]interface{}{
		"email":    "farmer@example.com",
		"password": "password123",
	})
	require.NoError(t, err)
	require.Empty(t, errs)

	back, err := svc.Jump(draft.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, back.Step)

	// Step 4 has never been reached and is not jumpable.
	_, err = svc.Jump(draft.ID, 4)
	assert.ErrorIs(t, err, wizard.ErrStepOutOfRange)
}
