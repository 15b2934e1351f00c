// Package notes contains note-domain helpers shared by the backend and UI
// consumers.
package notes

import "regexp"

// mentionPattern matches "@First Last" style references: two word runs
// separated by whitespace, prefixed with @.
var mentionPattern = regexp.MustCompile(`@(\w+\s+\w+)`)

// ExtractMentions returns the mentioned names found in content, in order
// of appearance. "@Alice Johnson" yields "Alice Johnson".
func ExtractMentions(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	mentions := make([]string, 0, len(matches))
	for _, m := range matches {
		mentions = append(mentions, m[1])
	}
	return mentions
}
