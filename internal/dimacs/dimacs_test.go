package dimacs

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cdclab/banditsat/internal/sat"
)

type instance struct {
	Variables int
	Clauses   [][]sat.Literal
}

func (i *instance) AddVariable() int {
	i.Variables++
	return i.Variables - 1
}

func (i *instance) AddClause(tmpClause []sat.Literal) error {
	clause := make([]sat.Literal, len(tmpClause))
	copy(clause, tmpClause)
	i.Clauses = append(i.Clauses, clause)
	return nil
}

const cnfBody = `c a small 3-variable instance
p cnf 3 2
1 -2 0
-1 2 3 0
`

var want = instance{
	Variables: 3,
	Clauses: [][]sat.Literal{
		{0, 3},
		{1, 2, 4},
	},
}

func writeCNF(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(cnfBody), 0o644); err != nil {
		t.Fatalf("os.WriteFile(): %s", err)
	}
	return path
}

func writeGzippedCNF(t *testing.T, name string) string {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write([]byte(cnfBody)); err != nil {
		t.Fatalf("gzip.Write(): %s", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("gzip.Close(): %s", err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("os.WriteFile(): %s", err)
	}
	return path
}

func TestLoad_cnf(t *testing.T) {
	got := instance{}
	path := writeCNF(t, "test_instance.cnf")
	if err := Load(path, false, &got); err != nil {
		t.Errorf("Load(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load(): mismatch (-want, +got):\n%s", diff)
	}
}

func TestLoad_gzip(t *testing.T) {
	got := instance{}
	path := writeGzippedCNF(t, "test_instance.cnf.gz")
	if err := Load(path, true, &got); err != nil {
		t.Errorf("Load(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load(): mismatch (-want, +got):\n%s", diff)
	}
}

func TestLoad_noFile(t *testing.T) {
	got := instance{}
	if err := Load("", false, &got); err == nil {
		t.Errorf("Load(): want error, got none")
	}
}

func TestLoad_gzip_notGzipFile(t *testing.T) {
	got := instance{}
	path := writeCNF(t, "test_instance.cnf")
	if err := Load(path, true, &got); err == nil {
		t.Errorf("Load(): want error, got none")
	}
}
