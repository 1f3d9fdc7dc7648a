package naming

import (
	"path/filepath"
	"time"
)

// OutputFilename returns the merged file name for account and date, where
// layout formats the date (normally "2006-01-02"):
//
//	with account:    <account>_<prefix>_<date>.csv
//	without account: <prefix>_<date>.csv
func OutputFilename(account, prefix, layout string, date time.Time) string {
	name := prefix + "_" + date.Format(layout) + ".csv"
	if account == "" {
		return name
	}
	return account + "_" + name
}

// OutputPath joins [OutputFilename] onto dir.
func OutputPath(dir, account, prefix, layout string, date time.Time) string {
	return filepath.Join(dir, OutputFilename(account, prefix, layout, date))
}
