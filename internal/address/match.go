package address

import (
	"strings"

	"github.com/gapfarm/portal/api/internal/logger"
)

// Administrative prefixes tolerated when matching names from saved records
// against the reference tree. Bangkok uses เขต/แขวง where the provinces use
// อำเภอ/ตำบล.
var namePrefixes = []string{"จังหวัด", "อำเภอ", "เขต", "ตำบล", "แขวง"}

// NormalizeName trims whitespace and strips a leading administrative prefix
// so that "จังหวัดสงขลา" and "สงขลา" compare equal.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	for _, prefix := range namePrefixes {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			name = strings.TrimSpace(rest)
			break
		}
	}
	return name
}

// MatchSelection resolves a saved record's province/district/sub-district
// names against the reference tree. Backend records store names rather than
// foreign keys into the static dataset, so edit flows drive the cascade by
// name matching. A failed match at any level leaves the deeper levels empty;
// misses are logged for diagnostics only and never produce an error.
func (d *Dataset) MatchSelection(provinceName, districtName, subdistrictName string, log *logger.Logger) Selection {
	var sel Selection

	wantProvince := NormalizeName(provinceName)
	if wantProvince == "" {
		return sel
	}

	var province *Province
	for i := range d.provinces {
		if d.provinces[i].NameTH == wantProvince {
			province = &d.provinces[i]
			break
		}
	}
	if province == nil {
		if log != nil {
			log.Warn("Province name not found in reference dataset", map[string]interface{}{
				"province": provinceName,
			})
		}
		return sel
	}
	sel.ProvinceID = province.ID
	sel.ProvinceName = province.NameTH

	wantDistrict := NormalizeName(districtName)
	if wantDistrict == "" {
		return sel
	}

	var district *Amphure
	for i := range province.Amphures {
		if province.Amphures[i].NameTH == wantDistrict {
			district = &province.Amphures[i]
			break
		}
	}
	if district == nil {
		if log != nil {
			log.Warn("District name not found in reference dataset", map[string]interface{}{
				"province": province.NameTH,
				"district": districtName,
			})
		}
		return sel
	}
	sel.DistrictID = district.ID
	sel.DistrictName = district.NameTH

	wantSubdistrict := NormalizeName(subdistrictName)
	if wantSubdistrict == "" {
		return sel
	}

	for i := range district.Tambons {
		if district.Tambons[i].NameTH == wantSubdistrict {
			sel.SubdistrictID = district.Tambons[i].ID
			sel.SubdistrictName = district.Tambons[i].NameTH
			sel.ZipCode = district.Tambons[i].ZipCode
			return sel
		}
	}

	if log != nil {
		log.Warn("Sub-district name not found in reference dataset", map[string]interface{}{
			"province":    province.NameTH,
			"district":    district.NameTH,
			"subDistrict": subdistrictName,
		})
	}
	return sel
}
