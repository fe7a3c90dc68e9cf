package predictions

import "fmt"

// teamLogoCodes maps FanGraphs team abbreviations to ESPN logo slugs.
var teamLogoCodes = map[string]string{
	"ATL": "atl", "BAL": "bal", "BOS": "bos", "CHC": "chc", "CIN": "cin",
	"CLE": "cle", "COL": "col", "CWS": "chw", "DET": "det", "HOU": "hou",
	"KCR": "kc", "LAA": "laa", "LAD": "lad", "MIA": "mia", "MIL": "mil",
	"MIN": "min", "NYM": "nym", "NYY": "nyy", "OAK": "oak", "PHI": "phi",
	"PIT": "pit", "SDP": "sd", "SEA": "sea", "SFG": "sf", "STL": "stl",
	"TBR": "tb", "TEX": "tex", "TOR": "tor", "WSN": "wsh",
}

// TeamLogoURL returns the ESPN logo URL for a team, or "" if unknown.
func TeamLogoURL(team string) string {
	code, ok := teamLogoCodes[team]
	if !ok {
		return ""
	}
	return fmt.Sprintf("https://a.espncdn.com/i/teamlogos/mlb/500/%s.png", code)
}
