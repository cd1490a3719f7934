package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/gapfarm/portal/api/internal/address"
	"github.com/gapfarm/portal/api/internal/auth"
	"github.com/gapfarm/portal/api/internal/logger"
	"github.com/gapfarm/portal/api/internal/models"
	"github.com/gapfarm/portal/api/internal/repository"
	"github.com/gapfarm/portal/api/internal/validation"
	"github.com/gapfarm/portal/api/internal/wizard"
)

// Registration service errors.
var (
	ErrEmailTaken     = errors.New("email is already registered")
	ErrCitizenIDTaken = errors.New("citizen ID is already registered")
	ErrDraftNotFound  = errors.New("draft not found or expired")
)

// RegisterFarmerInput is the final farmer registration payload. Citizen ID
// and phone numbers may arrive with separator dashes; they are stripped
// before persistence.
type RegisterFarmerInput struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	NamePrefix  string  `json:"namePrefix"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	CitizenID   string  `json:"identificationNumber"`
	HouseNo     string  `json:"houseNo"`
	Road        *string `json:"road,omitempty"`
	Alley       *string `json:"alley,omitempty"`
	Province    string  `json:"province"`
	District    string  `json:"district"`
	Subdistrict string  `json:"subDistrict"`
	ZipCode     string  `json:"zipCode"`
	Mobile      string  `json:"mobilePhoneNumber"`
	Phone       *string `json:"phoneNumber,omitempty"`
	Moo         int     `json:"moo"`
}

// RegistrationService defines the interface for the farmer registration
// workflow: the multi-step draft plus the final submission.
type RegistrationService interface {
	// StartDraft creates a fresh wizard draft at step 1.
	StartDraft() *wizard.Draft

	// Draft returns a live draft by id, or ErrDraftNotFound.
	Draft(id string) (*wizard.Draft, error)

	// Next merges submitted fields and runs the current step's gate.
	Next(id string, fields map[string]interface{}) (*wizard.Draft, wizard.FieldErrors, error)

	// Previous merges submitted fields and steps back.
	Previous(id string, fields map[string]interface{}) (*wizard.Draft, error)

	// Jump moves to a previously completed step.
	Jump(id string, step int) (*wizard.Draft, error)

	// Submit validates the whole draft, registers the farmer and discards
	// the draft only on success.
	Submit(ctx context.Context, id string) (*models.Farmer, wizard.FieldErrors, error)

	// Register performs the final registration directly from a full payload.
	Register(ctx context.Context, input RegisterFarmerInput) (*models.Farmer, error)

	// GetFarmer returns one registered farmer profile.
	GetFarmer(ctx context.Context, id uint) (*models.Farmer, error)
}

type registrationService struct {
	farmers   repository.FarmerRepository
	users     repository.UserRepository
	addresses *address.Dataset
	drafts    *wizard.Store
	def       *wizard.Definition
	log       *logger.Logger
}

// NewRegistrationService creates a new instance of RegistrationService.
func NewRegistrationService(
	farmers repository.FarmerRepository,
	users repository.UserRepository,
	addresses *address.Dataset,
	drafts *wizard.Store,
	log *logger.Logger,
) RegistrationService {
	return &registrationService{
		farmers:   farmers,
		users:     users,
		addresses: addresses,
		drafts:    drafts,
		def:       registrationWizard(),
		log:       log,
	}
}

// registrationWizard defines the four registration steps: account,
// personal data, address, contact.
func registrationWizard() *wizard.Definition {
	return &wizard.Definition{
		Steps: []wizard.StepValidator{
			// Step 1: account credentials.
			func(fields map[string]interface{}) wizard.FieldErrors {
				errs := wizard.FieldErrors{}
				if email, _ := fields["email"].(string); !validation.IsEmail(email) {
					errs["email"] = "a valid email address is required"
				}
				password, _ := fields["password"].(string)
				if msg := validation.CheckPassword(password); msg != "" {
					errs["password"] = msg
				}
				return errs
			},
			// Step 2: personal data.
			func(fields map[string]interface{}) wizard.FieldErrors {
				errs := wizard.FieldErrors{}
				if name, _ := fields["firstName"].(string); name == "" {
					errs["firstName"] = "first name is required"
				}
				if name, _ := fields["lastName"].(string); name == "" {
					errs["lastName"] = "last name is required"
				}
				if id, _ := fields["identificationNumber"].(string); !validation.IsCitizenID(id) {
					errs["identificationNumber"] = "must be a 13-digit Thai citizen ID"
				}
				return errs
			},
			// Step 3: address.
			func(fields map[string]interface{}) wizard.FieldErrors {
				errs := wizard.FieldErrors{}
				if houseNo, _ := fields["houseNo"].(string); houseNo == "" {
					errs["houseNo"] = "house number is required"
				}
				if !validation.IsMoo(intField(fields, "moo")) {
					errs["moo"] = "must be between 0 and 1000"
				}
				if p, _ := fields["province"].(string); p == "" {
					errs["province"] = "province is required"
				}
				if d, _ := fields["district"].(string); d == "" {
					errs["district"] = "district is required"
				}
				if sd, _ := fields["subDistrict"].(string); sd == "" {
					errs["subDistrict"] = "sub-district is required"
				}
				return errs
			},
			// Step 4: contact numbers.
			func(fields map[string]interface{}) wizard.FieldErrors {
				errs := wizard.FieldErrors{}
				if mobile, _ := fields["mobilePhoneNumber"].(string); !validation.IsMobile(mobile) {
					errs["mobilePhoneNumber"] = "must be a 10-digit mobile number"
				}
				return errs
			},
		},
	}
}

func intField(fields map[string]interface{}, key string) int {
	switch v := fields[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func (s *registrationService) StartDraft() *wizard.Draft {
	draft := s.def.NewDraft(uuid.New().String())
	s.drafts.Put(draft)
	return draft
}

func (s *registrationService) Draft(id string) (*wizard.Draft, error) {
	draft, ok := s.drafts.Get(id)
	if !ok {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

func (s *registrationService) Next(id string, fields map[string]interface{}) (*wizard.Draft, wizard.FieldErrors, error) {
	draft, ok := s.drafts.Get(id)
	if !ok {
		return nil, nil, ErrDraftNotFound
	}
	draft.Merge(fields)
	errs := draft.Next()
	s.drafts.Put(draft)
	return draft, errs, nil
}

func (s *registrationService) Previous(id string, fields map[string]interface{}) (*wizard.Draft, error) {
	draft, ok := s.drafts.Get(id)
	if !ok {
		return nil, ErrDraftNotFound
	}
	draft.Merge(fields)
	draft.Previous()
	s.drafts.Put(draft)
	return draft, nil
}

func (s *registrationService) Jump(id string, step int) (*wizard.Draft, error) {
	draft, ok := s.drafts.Get(id)
	if !ok {
		return nil, ErrDraftNotFound
	}
	if err := draft.Jump(step); err != nil {
		return nil, err
	}
	s.drafts.Put(draft)
	return draft, nil
}

func (s *registrationService) Submit(ctx context.Context, id string) (*models.Farmer, wizard.FieldErrors, error) {
	draft, ok := s.drafts.Get(id)
	if !ok {
		return nil, nil, ErrDraftNotFound
	}

	if errs := draft.Finalize(); len(errs) > 0 {
		// Failed submit keeps the draft (and all entered data) alive.
		s.drafts.Put(draft)
		return nil, errs, nil
	}

	input := RegisterFarmerInput{
		Email:       draft.String("email"),
		Password:    draft.String("password"),
		NamePrefix:  draft.String("namePrefix"),
		FirstName:   draft.String("firstName"),
		LastName:    draft.String("lastName"),
		CitizenID:   draft.String("identificationNumber"),
		HouseNo:     draft.String("houseNo"),
		Province:    draft.String("province"),
		District:    draft.String("district"),
		Subdistrict: draft.String("subDistrict"),
		ZipCode:     draft.String("zipCode"),
		Mobile:      draft.String("mobilePhoneNumber"),
		Moo:         draft.Int("moo"),
	}
	if road := draft.String("road"); road != "" {
		input.Road = &road
	}
	if alley := draft.String("alley"); alley != "" {
		input.Alley = &alley
	}
	if phone := draft.String("phoneNumber"); phone != "" {
		input.Phone = &phone
	}

	farmer, err := s.Register(ctx, input)
	if err != nil {
		return nil, nil, err
	}

	// Success: the draft is fully discarded.
	s.drafts.Delete(id)
	return farmer, nil, nil
}

func (s *registrationService) GetFarmer(ctx context.Context, id uint) (*models.Farmer, error) {
	farmer, err := s.farmers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if farmer == nil {
		return nil, ErrFarmerNotFound
	}
	return farmer, nil
}

func (s *registrationService) Register(ctx context.Context, input RegisterFarmerInput) (*models.Farmer, error) {
	citizenID := validation.StripDashes(input.CitizenID)
	mobile := validation.StripDashes(input.Mobile)

	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	taken, err := s.farmers.ExistsByCitizenID(ctx, citizenID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCitizenIDTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	// Derive the zip code from the reference dataset when the saved names
	// resolve; otherwise keep whatever the payload carried.
	zipCode := input.ZipCode
	if sel := s.addresses.MatchSelection(input.Province, input.District, input.Subdistrict, s.log); sel.ZipCode != "" {
		zipCode = sel.ZipCode
	}

	user := &models.User{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      auth.RoleFarmer,
	}
	user.PasswordHash = hash

	var phone *string
	if input.Phone != nil {
		stripped := validation.StripDashes(*input.Phone)
		phone = &stripped
	}

	farmer := &models.Farmer{
		NamePrefix:  input.NamePrefix,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		CitizenID:   citizenID,
		HouseNo:     input.HouseNo,
		Moo:         input.Moo,
		Road:        input.Road,
		Alley:       input.Alley,
		Province:    input.Province,
		District:    input.District,
		Subdistrict: input.Subdistrict,
		ZipCode:     zipCode,
		Mobile:      mobile,
		Phone:       phone,
	}

	if err := s.farmers.Create(ctx, user, farmer); err != nil {
		s.log.Error("Failed to register farmer", err, map[string]interface{}{"email": input.Email})
		return nil, err
	}

	s.log.Info("Farmer registered", map[string]interface{}{
		"farmer_id": farmer.ID,
		"user_id":   user.ID,
	})
	return farmer, nil
}
