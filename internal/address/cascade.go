package address

import (
	"errors"
)

var (
	// ErrUnknownProvince is returned when selecting a province id not in the dataset.
	ErrUnknownProvince = errors.New("unknown province")
	// ErrDistrictNotInProvince is returned when the district does not belong to the selected province.
	ErrDistrictNotInProvince = errors.New("district does not belong to the selected province")
	// ErrSubdistrictNotInDistrict is returned when the sub-district does not belong to the selected district.
	ErrSubdistrictNotInDistrict = errors.New("sub-district does not belong to the selected district")
)

// Selection is the mutually consistent province/district/sub-district pick.
// The zip code is derived from the sub-district and is never independently
// editable. The zero Selection means nothing is selected.
type Selection struct {
	ProvinceName    string `json:"province"`
	DistrictName    string `json:"district"`
	SubdistrictName string `json:"subDistrict"`
	ZipCode         string `json:"zipCode"`
	ProvinceID      uint   `json:"provinceId"`
	DistrictID      uint   `json:"districtId"`
	SubdistrictID   uint   `json:"subDistrictId"`
}

// SelectProvince starts a fresh selection at the given province. District and
// sub-district (and the derived zip code) are always cleared, regardless of
// prior state. Province id 0 clears the whole selection.
func (d *Dataset) SelectProvince(id uint) (Selection, error) {
	if id == 0 {
		return Selection{}, nil
	}
	p, ok := d.provinceBy[id]
	if !ok {
		return Selection{}, ErrUnknownProvince
	}
	return Selection{ProvinceID: p.ID, ProvinceName: p.NameTH}, nil
}

// SelectDistrict sets the district on a selection. The district must belong
// to the currently selected province; the option lists are pre-filtered so a
// well-behaved client can never trip this, but the invariant is enforced
// anyway. Sub-district and zip code are cleared.
func (d *Dataset) SelectDistrict(sel Selection, id uint) (Selection, error) {
	if d.amphureProvince[id] != sel.ProvinceID || sel.ProvinceID == 0 {
		return sel, ErrDistrictNotInProvince
	}
	a := d.amphureBy[id]
	return Selection{
		ProvinceID:   sel.ProvinceID,
		ProvinceName: sel.ProvinceName,
		DistrictID:   a.ID,
		DistrictName: a.NameTH,
	}, nil
}

// SelectSubdistrict sets the sub-district and immediately derives the zip
// code from its stored value.
func (d *Dataset) SelectSubdistrict(sel Selection, id uint) (Selection, error) {
	if d.tambonAmphure[id] != sel.DistrictID || sel.DistrictID == 0 {
		return sel, ErrSubdistrictNotInDistrict
	}
	t := d.tambonBy[id]
	sel.SubdistrictID = t.ID
	sel.SubdistrictName = t.NameTH
	sel.ZipCode = t.ZipCode
	return sel, nil
}

// DistrictOptions returns the district choices for the current selection.
// Empty when no province is selected.
func (d *Dataset) DistrictOptions(sel Selection) []Amphure {
	return d.DistrictsOf(sel.ProvinceID)
}

// SubdistrictOptions returns the sub-district choices for the current
// selection. Empty when no district is selected.
func (d *Dataset) SubdistrictOptions(sel Selection) []Tambon {
	return d.SubdistrictsOf(sel.DistrictID)
}
