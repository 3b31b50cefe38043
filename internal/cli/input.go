package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/texbox/pkg/errors"
	"github.com/matzehuels/texbox/pkg/pipeline"
)

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

// readSource returns the formula to process. An input file wins over
// arguments; "-" in either place reads stdin. Several arguments are
// joined with spaces so unquoted formulas still work.
func readSource(args []string, input string) (string, error) {
	switch {
	case input == "-":
		return readAll(stdin, "stdin")
	case input != "":
		return readFile(input)
	case len(args) == 1 && args[0] == "-":
		return readAll(stdin, "stdin")
	case len(args) > 0:
		return strings.Join(args, " "), nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "no formula given (pass it as an argument, with --input, or on stdin with -)")
}

// readPreamble loads a definitions file; an empty path yields "".
func readPreamble(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	return readFile(path)
}

func readFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return readAll(f, path)
}

func readAll(r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, errors.MaxSourceLength+1))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", name)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// basePath derives the base output path for multi-format output.
// Without an explicit output it falls back to the input file name, then
// to "formula". A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "" || input == "-" {
			return "formula"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath picks the file for one format. A single format honours
// output verbatim; several formats share its base with per-format
// extensions.
func outputPath(output, input, format string, formats int) string {
	if formats == 1 && output != "" {
		return output
	}
	return basePath(output, input) + "." + format
}
