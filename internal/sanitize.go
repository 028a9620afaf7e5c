package internal

import "strings"

var filenameReplacer = strings.NewReplacer(
	`\`, "-",
	"/", "-",
	"*", "-",
	"?", "-",
	":", "-",
	`"`, "-",
	"<", "-",
	">", "-",
	"|", "-",
)

// CleanFilename replaces characters that are not allowed in file names
func CleanFilename(name string) string {
	return strings.TrimSpace(filenameReplacer.Replace(name))
}
