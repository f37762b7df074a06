package constants

import "strings"

// ImportExtensions holds the file extensions accepted by directory imports.
var ImportExtensions = map[string]struct{}{
	"csv":  {},
	"tsv":  {},
	"txt":  {},
	"xlsx": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
