package grammar

import "strconv"

func trimFloat(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}
