package constants

import "os"

const OutputDirEnv = "REBEAM_OUT"

// OutputDirFromEnv reports the rule table directory set in REBEAM_OUT.
func OutputDirFromEnv() (string, bool) {
	path := os.Getenv(OutputDirEnv)
	return path, path != ""
}

// rule tables are gob files named <uuid>.dat
const TableExt = ".dat"

// largest numerator the report command walks by default
const DefaultReportNumerator = 16
