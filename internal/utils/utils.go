package utils

import (
	"bufio"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// illegalPathCharsPattern matches ASCII control characters and characters that
	// Windows forbids in file names: \ / : * ? " < > |.
	//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
	illegalPathCharsPattern = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

	// whitespaceRunPattern matches one or more whitespace characters.
	//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
	whitespaceRunPattern = regexp.MustCompile(`\s+`)

	// textContentTypePatterns matches content types whose bodies are safe to dump into logs.
	//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
	textContentTypePatterns = []*regexp.Regexp{
		regexp.MustCompile("^text/.+"),
		regexp.MustCompile("^application/json$"),
		regexp.MustCompile(`^application/x-www-form-urlencoded$`),
	}
)

// SafeInt64ToUint64 converts an int64 to uint64, clamping negative values to zero.
func SafeInt64ToUint64(val int64) uint64 {
	if val < 0 {
		return 0
	}

	return uint64(val)
}

// ReplaceIllegalPathChars replaces characters that are illegal in file names with a space,
// collapses runs of whitespace into one space and trims the result.
func ReplaceIllegalPathChars(name string) string {
	result := illegalPathCharsPattern.ReplaceAllString(name, " ")
	result = whitespaceRunPattern.ReplaceAllString(result, " ")

	return strings.TrimSpace(result)
}

// SetFileExtension ensures the file has the specified extension.
// If the filename already has the correct extension, it is returned unchanged.
// If the filename has a different extension, the old extension is replaced with the new one
// when isExtensionReplaced is set, otherwise the new extension is appended.
func SetFileExtension(filename, extension string, isExtensionReplaced bool) string {
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	currentExt := filepath.Ext(filename)
	if currentExt == extension {
		return filename
	}

	if isExtensionReplaced {
		filename = strings.TrimSuffix(filename, currentExt)
	}

	return filename + extension
}

// IsFileExist checks if a file exists at the specified path.
// It returns true if the file exists and is not a directory, false if the file does not exist,
// and an error if there was an issue accessing the file.
func IsFileExist(path string) (bool, error) {
	stat, err := os.Stat(path)
	if err == nil {
		return !stat.IsDir(), nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// ReadUniqueLinesFromFile reads a text file and returns its unique non-empty lines in order.
func ReadUniqueLinesFromFile(path string) ([]string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	defer file.Close() //nolint:errcheck // Error on close is not critical here.

	var (
		uniqueLines = make(map[string]struct{})
		lines       []string
		scanner     = bufio.NewScanner(file)
	)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if _, exists := uniqueLines[line]; !exists {
			uniqueLines[line] = struct{}{}

			lines = append(lines, line)
		}
	}

	if err = scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// ExtractNamedGroup extracts the value of a named capturing group from a regex match.
// It returns an empty string if the group is not found or if there is no match.
func ExtractNamedGroup(re *regexp.Regexp, groupName, input string) string {
	match := re.FindStringSubmatch(input)
	if match == nil {
		return ""
	}

	for i, name := range re.SubexpNames() {
		if name == groupName {
			return match[i]
		}
	}

	return ""
}

// IsTextContentType reports whether the content type is text-based with a UTF-8 or ASCII charset.
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}

// Map applies a transformation function to each element of a slice and returns a new slice with the results.
func Map[E, S any](v []E, transformFunc func(E) S) []S {
	result := make([]S, len(v))
	for i := range v {
		result[i] = transformFunc(v[i])
	}

	return result
}

// Filter returns the elements of v for which keep returns true.
func Filter[E any](v []E, keep func(E) bool) []E {
	result := make([]E, 0, len(v))
	for i := range v {
		if keep(v[i]) {
			result = append(result, v[i])
		}
	}

	return result
}
