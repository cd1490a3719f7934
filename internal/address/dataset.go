// Package address holds the static Thai administrative address hierarchy
// (province, amphure/district, tambon/sub-district) and the cascading
// selection rules built on top of it.
package address

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/provinces.json
var rawProvinces []byte

// Tambon is a sub-district. Each tambon carries exactly one postal code.
type Tambon struct {
	NameTH  string `json:"name_th"`
	NameEN  string `json:"name_en"`
	ZipCode string `json:"zip_code"`
	ID      uint   `json:"id"`
}

// Amphure is a district. An amphure belongs to exactly one province.
type Amphure struct {
	NameTH  string   `json:"name_th"`
	NameEN  string   `json:"name_en"`
	Tambons []Tambon `json:"tambons"`
	ID      uint     `json:"id"`
}

// Province is the top level of the hierarchy.
type Province struct {
	NameTH   string    `json:"name_th"`
	NameEN   string    `json:"name_en"`
	Amphures []Amphure `json:"amphures"`
	ID       uint      `json:"id"`
}

// Dataset is the read-only reference tree, loaded once at startup from the
// bundled dataset. Lookup maps are built eagerly; the tree never changes
// after Load.
type Dataset struct {
	provinces  []Province
	provinceBy map[uint]*Province
	amphureBy  map[uint]*Amphure
	// amphure id -> owning province id, used to reject cross-province picks
	amphureProvince map[uint]uint
	tambonBy        map[uint]*Tambon
	tambonAmphure   map[uint]uint
}

// Load parses the bundled province dataset and builds the lookup indexes.
func Load() (*Dataset, error) {
	var provinces []Province
	if err := json.Unmarshal(rawProvinces, &provinces); err != nil {
		return nil, fmt.Errorf("failed to parse bundled province dataset: %w", err)
	}

	d := &Dataset{
		provinces:       provinces,
		provinceBy:      make(map[uint]*Province),
		amphureBy:       make(map[uint]*Amphure),
		amphureProvince: make(map[uint]uint),
		tambonBy:        make(map[uint]*Tambon),
		tambonAmphure:   make(map[uint]uint),
	}

	for pi := range d.provinces {
		p := &d.provinces[pi]
		d.provinceBy[p.ID] = p
		for ai := range p.Amphures {
			a := &p.Amphures[ai]
			d.amphureBy[a.ID] = a
			d.amphureProvince[a.ID] = p.ID
			for ti := range a.Tambons {
				t := &a.Tambons[ti]
				d.tambonBy[t.ID] = t
				d.tambonAmphure[t.ID] = a.ID
			}
		}
	}

	return d, nil
}

// Provinces returns every province in the dataset.
func (d *Dataset) Provinces() []Province {
	return d.provinces
}

// Province looks up a province by id.
func (d *Dataset) Province(id uint) (*Province, bool) {
	p, ok := d.provinceBy[id]
	return p, ok
}

// DistrictsOf returns the district option list for a province, or nil when
// the province is unknown or unselected (id 0).
func (d *Dataset) DistrictsOf(provinceID uint) []Amphure {
	p, ok := d.provinceBy[provinceID]
	if !ok {
		return nil
	}
	return p.Amphures
}

// SubdistrictsOf returns the sub-district option list for a district, or nil
// when the district is unknown.
func (d *Dataset) SubdistrictsOf(districtID uint) []Tambon {
	a, ok := d.amphureBy[districtID]
	if !ok {
		return nil
	}
	return a.Tambons
}
