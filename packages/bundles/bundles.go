// Package bundles maps class-taxonomy identifiers to the ordered list of
// white matter bundle names the pipeline segments. Index 0 of every list is
// the background pseudo-class, so the class count of a taxonomy is
// len(names) - 1.
package bundles

import (
	"fmt"
	"sort"
)

// all72 is the full bundle set of the reference atlas.
var all72 = []string{
	"AF_left", "AF_right", "ATR_left", "ATR_right", "CA",
	"CC_1", "CC_2", "CC_3", "CC_4", "CC_5", "CC_6", "CC_7",
	"CG_left", "CG_right", "CST_left", "CST_right",
	"MLF_left", "MLF_right", "FPT_left", "FPT_right",
	"FX_left", "FX_right", "ICP_left", "ICP_right",
	"IFO_left", "IFO_right", "ILF_left", "ILF_right", "MCP",
	"OR_left", "OR_right", "POPT_left", "POPT_right",
	"SCP_left", "SCP_right",
	"SLF_I_left", "SLF_I_right", "SLF_II_left", "SLF_II_right",
	"SLF_III_left", "SLF_III_right",
	"STR_left", "STR_right", "UF_left", "UF_right", "CC",
	"T_PREF_left", "T_PREF_right", "T_PREM_left", "T_PREM_right",
	"T_PREC_left", "T_PREC_right", "T_POSTC_left", "T_POSTC_right",
	"T_PAR_left", "T_PAR_right", "T_OCC_left", "T_OCC_right",
	"ST_FO_left", "ST_FO_right", "ST_PREF_left", "ST_PREF_right",
	"ST_PREM_left", "ST_PREM_right", "ST_PREC_left", "ST_PREC_right",
	"ST_POSTC_left", "ST_POSTC_right", "ST_PAR_left", "ST_PAR_right",
	"ST_OCC_left", "ST_OCC_right",
}

// autoPTX uses the protocol's own lowercase naming.
var autoPTX = []string{
	"ar_l", "ar_r", "atr_l", "atr_r", "cbd_l", "cbd_r",
	"cbp_l", "cbp_r", "cbt_l", "cbt_r", "cst_l", "cst_r",
	"fa_l", "fa_r", "fma", "fmi", "fx_l", "fx_r",
	"ifo_l", "ifo_r", "ilf_l", "ilf_r", "mcp", "ml_l", "ml_r",
	"or_l", "or_r", "ptr_l", "ptr_r", "slf_l", "slf_r",
	"str_l", "str_r", "unc_l", "unc_r",
}

var taxonomies = map[string][]string{
	"All":     all72,
	"AutoPTX": autoPTX,
	"11": {
		"CA", "CC_1", "CC_7", "CG_left", "CG_right",
		"CST_left", "CST_right", "FX_left", "FX_right",
		"IFO_left", "IFO_right",
	},
	"20": {
		"AF_left", "AF_right", "ATR_left", "ATR_right", "CA",
		"CC_1", "CC_7", "CG_left", "CG_right",
		"CST_left", "CST_right", "FX_left", "FX_right",
		"IFO_left", "IFO_right", "ILF_left", "ILF_right",
		"MCP", "UF_left", "UF_right",
	},
	"test": {"CA", "CC_7", "CST_right", "FX_left", "MCP"},
}

// Names returns the bundle names for a taxonomy with the background
// pseudo-class prepended at index 0.
func Names(taxonomy string) ([]string, error) {
	bundles, ok := taxonomies[taxonomy]
	if !ok {
		return nil, fmt.Errorf("unknown class taxonomy: %q (known: %v)", taxonomy, Taxonomies())
	}
	names := make([]string, 0, len(bundles)+1)
	names = append(names, "background")
	return append(names, bundles...), nil
}

// Count returns the number of classes in a taxonomy, background excluded.
func Count(taxonomy string) (int, error) {
	names, err := Names(taxonomy)
	if err != nil {
		return 0, err
	}
	return len(names) - 1, nil
}

// Taxonomies lists the known taxonomy identifiers in sorted order.
func Taxonomies() []string {
	names := make([]string, 0, len(taxonomies))
	for name := range taxonomies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
