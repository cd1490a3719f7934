package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDataset(t *testing.T) *Dataset {
	t.Helper()
	d, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, d.Provinces())
	return d
}

func TestSelectProvince_PopulatesDistrictsAndClearsDeeperLevels(t *testing.T) {
	d := loadDataset(t)

	sel, err := d.SelectProvince(90)
	require.NoError(t, err)

	assert.Equal(t, uint(90), sel.ProvinceID)
	assert.Equal(t, "สงขลา", sel.ProvinceName)
	assert.Zero(t, sel.DistrictID)
	assert.Zero(t, sel.SubdistrictID)
	assert.Empty(t, sel.ZipCode)

	// District options equal exactly the province's districts.
	p, ok := d.Province(90)
	require.True(t, ok)
	assert.Equal(t, p.Amphures, d.DistrictOptions(sel))
}

func TestSelectProvince_ZeroClearsEverything(t *testing.T) {
	d := loadDataset(t)

	sel, err := d.SelectProvince(0)
	require.NoError(t, err)

	assert.Equal(t, Selection{}, sel)
	assert.Empty(t, d.DistrictOptions(sel))
	assert.Empty(t, d.SubdistrictOptions(sel))
}

func TestSelectProvince_Unknown(t *testing.T) {
	d := loadDataset(t)

	_, err := d.SelectProvince(999)
	assert.ErrorIs(t, err, ErrUnknownProvince)
}

func TestSelectDistrict_ClearsSubdistrictAndZip(t *testing.T) {
	d := loadDataset(t)

	sel, err := d.SelectProvince(90)
	require.NoError(t, err)
	sel, err = d.SelectDistrict(sel, 9011)
	require.NoError(t, err)
	sel, err = d.SelectSubdistrict(sel, 901101)
	require.NoError(t, err)
	require.Equal(t, "90110", sel.ZipCode)

	// Re-selecting a district wipes the sub-district and derived zip.
	sel, err = d.SelectDistrict(sel, 9001)
	require.NoError(t, err)
	assert.Equal(t, "เมืองสงขลา", sel.DistrictName)
	assert.Zero(t, sel.SubdistrictID)
	assert.Empty(t, sel.SubdistrictName)
	assert.Empty(t, sel.ZipCode)
}

func TestSelectDistrict_CrossProvinceRejected(t *testing.T) {
	d := loadDataset(t)

	sel, err := d.SelectProvince(90)
	require.NoError(t, err)

	// 5001 is Mueang Chiang Mai, not a Songkhla district.
	_, err = d.SelectDistrict(sel, 5001)
	assert.ErrorIs(t, err, ErrDistrictNotInProvince)
}

func TestSelectSubdistrict_DerivesZipCode(t *testing.T) {
	d := loadDataset(t)

	sel, err := d.SelectProvince(90)
	require.NoError(t, err)
	sel, err = d.SelectDistrict(sel, 9010)
	require.NoError(t, err)
	sel, err = d.SelectSubdistrict(sel, 901001)
	require.NoError(t, err)

	assert.Equal(t, "สะเดา", sel.SubdistrictName)
	assert.Equal(t, "90120", sel.ZipCode)
}

func TestSelectProvince_ResetIdempotentRegardlessOfPriorState(t *testing.T) {
	d := loadDataset(t)

	sel, err := d.SelectProvince(90)
	require.NoError(t, err)
	sel, err = d.SelectDistrict(sel, 9011)
	require.NoError(t, err)
	sel, err = d.SelectSubdistrict(sel, 901103)
	require.NoError(t, err)

	// Switching province always yields empty district and sub-district.
	sel, err = d.SelectProvince(50)
	require.NoError(t, err)
	assert.Equal(t, "เชียงใหม่", sel.ProvinceName)
	assert.Zero(t, sel.DistrictID)
	assert.Zero(t, sel.SubdistrictID)
	assert.Empty(t, sel.ZipCode)
}

func TestLoad_CoversAllProvinces(t *testing.T) {
	d := loadDataset(t)

	provinces := d.Provinces()
	require.Len(t, provinces, 77)

	seen := make(map[uint]bool, len(provinces))
	for _, p := range provinces {
		assert.False(t, seen[p.ID], "duplicate province id %d", p.ID)
		seen[p.ID] = true
		assert.NotEmpty(t, p.NameTH, "province %d has no Thai name", p.ID)
		require.NotEmpty(t, p.Amphures, "province %s has no districts", p.NameTH)
		for _, a := range p.Amphures {
			require.NotEmpty(t, a.Tambons, "district %s has no sub-districts", a.NameTH)
			for _, tb := range a.Tambons {
				assert.Len(t, tb.ZipCode, 5, "sub-district %s has a malformed zip", tb.NameTH)
			}
		}
	}
}

func TestMatchSelection_ResolvesEveryProvincialSeat(t *testing.T) {
	d := loadDataset(t)

	// Every province must resolve down to a zip through its first district,
	// so registration never falls back to a client-supplied zip for a
	// correctly spelled address.
	for _, p := range d.Provinces() {
		a := p.Amphures[0]
		tb := a.Tambons[0]

		sel := d.MatchSelection(p.NameTH, a.NameTH, tb.NameTH, nil)
		assert.Equal(t, p.ID, sel.ProvinceID, "province %s", p.NameTH)
		assert.Equal(t, tb.ZipCode, sel.ZipCode, "province %s", p.NameTH)
	}
}

func TestMatchSelection_RubberProvinceDerivesZip(t *testing.T) {
	d := loadDataset(t)

	sel := d.MatchSelection("ระยอง", "เมืองระยอง", "ท่าประดู่", nil)

	assert.Equal(t, uint(21), sel.ProvinceID)
	assert.Equal(t, "เมืองระยอง", sel.DistrictName)
	assert.Equal(t, "21000", sel.ZipCode)
}

func TestNormalizeName_StripsAdministrativePrefixes(t *testing.T) {
	cases := map[string]string{
		"จังหวัดสงขลา":   "สงขลา",
		"อำเภอหาดใหญ่":   "หาดใหญ่",
		"เขตบางรัก":      "บางรัก",
		"ตำบลคอหงส์":     "คอหงส์",
		"แขวงสีลม":       "สีลม",
		"  สงขลา  ":      "สงขลา",
		"จังหวัด สงขลา":  "สงขลา",
		"สงขลา":          "สงขลา",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeName(input), "input %q", input)
	}
}

func TestMatchSelection_ResolvesPrefixedNames(t *testing.T) {
	d := loadDataset(t)

	sel := d.MatchSelection("จังหวัดสงขลา", "อำเภอหาดใหญ่", "ตำบลคอหงส์", nil)

	assert.Equal(t, uint(90), sel.ProvinceID)
	assert.Equal(t, uint(9011), sel.DistrictID)
	assert.Equal(t, uint(901103), sel.SubdistrictID)
	assert.Equal(t, "90110", sel.ZipCode)
}

func TestMatchSelection_BangkokPrefixes(t *testing.T) {
	d := loadDataset(t)

	sel := d.MatchSelection("กรุงเทพมหานคร", "เขตบางรัก", "แขวงสีลม", nil)

	assert.Equal(t, uint(10), sel.ProvinceID)
	assert.Equal(t, "บางรัก", sel.DistrictName)
	assert.Equal(t, "10500", sel.ZipCode)
}

func TestMatchSelection_MissLeavesDeeperLevelsEmpty(t *testing.T) {
	d := loadDataset(t)

	// Unknown district: province resolves, everything deeper stays empty.
	sel := d.MatchSelection("สงขลา", "อำเภอไม่มีจริง", "ตำบลคอหงส์", nil)
	assert.Equal(t, uint(90), sel.ProvinceID)
	assert.Zero(t, sel.DistrictID)
	assert.Zero(t, sel.SubdistrictID)
	assert.Empty(t, sel.ZipCode)

	// Unknown province: nothing resolves.
	sel = d.MatchSelection("จังหวัดไม่มีจริง", "หาดใหญ่", "คอหงส์", nil)
	assert.Equal(t, Selection{}, sel)
}
