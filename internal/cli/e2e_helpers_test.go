package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"quizharvest/internal/aggregate"
)

const exportedReview = "Pregunta 1\n" +
	"Se puntúa 1,00 sobre 1,00\n" +
	"Capital de Francia:\n" +
	"PARÍS\n" +
	"La respuesta correcta es: París\n" +
	"Pregunta 2\n" +
	"Se puntúa 1,00 sobre 1,00\n" +
	"¿Qué río pasa por Madrid?\n" +
	"a. Manzanares.\n" +
	"b. Ebro.\n" +
	"La respuesta correcta es: Manzanares\n"

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// extractFixture runs extract on the exported review and returns the results path.
func extractFixture(t *testing.T, dir, name string) string {
	t.Helper()
	input := writeFile(t, dir, name+".txt", exportedReview)
	output := filepath.Join(dir, name+".json")
	res := runCLI(t, "extract", "--ui", "plain", "--output", output, input)
	if res.code != ExitOK {
		t.Fatalf("extract exit %d: %s", res.code, res.stderr)
	}
	return output
}

func loadResults(t *testing.T, path string) *aggregate.Results {
	t.Helper()
	results, err := aggregate.LoadFile(path)
	if err != nil {
		t.Fatalf("load results: %v", err)
	}
	return results
}
