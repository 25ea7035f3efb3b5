// Package clock provides the two timestamp formats used by the pipeline's
// output sinks: an ISO-8601-with-millis stamp for the GUI throttle, and a
// space-separated prefix for the labeled-field historical sinks.
package clock

import "time"

// ISO8601Millis renders t as "YYYY-MM-DDTHH:MM:SS.mmm" in local time.
func ISO8601Millis(t time.Time) string {
	return t.Local().Format("2006-01-02T15:04:05.000")
}

// OutputPrefix renders t as "YYYY-MM-DD HH:MM:SS.mmm " in local time, the
// prefix every labeled historical-sink record begins with.
func OutputPrefix(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05.000") + " "
}
