package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "fatura-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "fatura")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/fatura")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runFatura(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

const sampleInput = `Data,Arquivo,Descrição,Valor (R$),Categoria
10/12,fatura-jan.pdf,MERCADO BOM PRECO,"R$ 400,00",Alimentação
20/02,fatura-fev.pdf,MERCADO BOM PRECO,"R$ 500,00",Alimentação
20/02,fatura-fev.pdf,UBER TRIP,"R$ 100,00",Transporte
`

// initWorkspace initializes a workspace and drops the sample input in it.
func initWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := runFatura(t, "init", dir)
	require.NoError(t, err, "init failed: %s", out)

	err = os.WriteFile(filepath.Join(dir, "gastos_consolidados.csv"), []byte(sampleInput), 0o644)
	require.NoError(t, err)
	return dir
}

func enrichWorkspace(t *testing.T) string {
	t.Helper()
	dir := initWorkspace(t)
	out, err := runFatura(t, "enrich", "--dir", dir)
	require.NoError(t, err, "enrich failed: %s", out)
	return dir
}

func TestInit_CreatesWorkspace(t *testing.T) {
	dir := t.TempDir()
	out, err := runFatura(t, "init", dir)
	require.NoError(t, err, "init failed: %s", out)

	info, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	data, err := os.ReadFile(filepath.Join(dir, "fatura.yaml"))
	require.NoError(t, err)
	contents := string(data)
	assert.Contains(t, contents, "input: gastos_consolidados.csv")
	assert.Contains(t, contents, "default_year: 2025")
}

func TestInit_RefusesExistingWorkspace(t *testing.T) {
	dir := t.TempDir()
	_, err := runFatura(t, "init", dir)
	require.NoError(t, err)

	out, err := runFatura(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, out, "already initialized")
}

func TestEnrich_WritesOutputAndLog(t *testing.T) {
	dir := initWorkspace(t)

	out, err := runFatura(t, "enrich", "--dir", dir)
	require.NoError(t, err, "enrich failed: %s", out)
	assert.Contains(t, out, "Enriched 3 rows")

	data, err := os.ReadFile(filepath.Join(dir, "gastos_consolidados_final.csv"))
	require.NoError(t, err)
	contents := string(data)

	lines := strings.Split(strings.TrimSpace(contents), "\n")
	assert.Equal(t, "MES_FATURA,SEMANA_FATURA,Data,Arquivo,Descrição,Valor (R$),Categoria", lines[0])
	require.Len(t, lines, 4)

	// 10/12 in the January statement completes to 2024 and lands in the
	// January cycle; 20/02 defaults to 2025 and lands in the March cycle.
	assert.Contains(t, contents, "2025-01 (JAN),2,2024-12-10")
	assert.Contains(t, contents, "2025-03 (MAR),3,2025-02-20")

	logData, err := os.ReadFile(filepath.Join(dir, "logs", "enrich-log.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "gastos_consolidados.csv,gastos_consolidados_final.csv,3,0,0,0")
}

func TestEnrich_MissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := runFatura(t, "init", dir)
	require.NoError(t, err)

	out, err := runFatura(t, "enrich", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, out, "gastos_consolidados.csv")
}

func TestSummary_AllPeriods(t *testing.T) {
	dir := enrichWorkspace(t)

	out, err := runFatura(t, "summary", "--dir", dir)
	require.NoError(t, err, "summary failed: %s", out)

	assert.Contains(t, out, "Gasto total:   R$ 1.000,00")
	assert.Contains(t, out, "Transações:    3")
	assert.Contains(t, out, "MERCADO BOM PRECO")
	assert.Contains(t, out, "Score financeiro:")
}

func TestSummary_PeriodFilter(t *testing.T) {
	dir := enrichWorkspace(t)

	out, err := runFatura(t, "summary", "--dir", dir, "--period", "fatura-fev.pdf")
	require.NoError(t, err, "summary failed: %s", out)

	assert.Contains(t, out, "Período: fatura-fev.pdf")
	assert.Contains(t, out, "Gasto total:   R$ 600,00")
	assert.Contains(t, out, "Transações:    2")
}

func TestSummary_CategoryFilter(t *testing.T) {
	dir := enrichWorkspace(t)

	out, err := runFatura(t, "summary", "--dir", dir, "--category", "Transporte")
	require.NoError(t, err, "summary failed: %s", out)

	assert.Contains(t, out, "Gasto total:   R$ 100,00")
	assert.Contains(t, out, "Transações:    1")

	// Evolution and forecast stay on the unfiltered table: both
	// statements appear even though only one has Transporte rows.
	assert.Contains(t, out, "fatura-jan.pdf")
	assert.Contains(t, out, "Previsão mensal: R$ 300,00")
}

func TestReport(t *testing.T) {
	dir := enrichWorkspace(t)

	out, err := runFatura(t, "report", "--dir", dir)
	require.NoError(t, err, "report failed: %s", out)

	assert.Contains(t, out, "MERCADO BOM PRECO")
	assert.Contains(t, out, "UBER TRIP")
	assert.Contains(t, out, "Economia total possível")
}

func TestReport_Top(t *testing.T) {
	dir := enrichWorkspace(t)

	out, err := runFatura(t, "report", "--dir", dir, "--top", "1")
	require.NoError(t, err, "report failed: %s", out)

	assert.Contains(t, out, "MERCADO BOM PRECO")
	assert.NotContains(t, out, "UBER TRIP")
}

func TestAsk(t *testing.T) {
	dir := enrichWorkspace(t)

	out, err := runFatura(t, "ask", "--dir", dir, "quanto", "gastei", "no", "total")
	require.NoError(t, err, "ask failed: %s", out)
	assert.Contains(t, out, "Seu gasto total foi R$ 1.000,00")

	out, err = runFatura(t, "ask", "--dir", dir, "bom", "dia")
	require.NoError(t, err)
	assert.Contains(t, out, "Não consegui entender sua pergunta")
}

func TestCommands_RequireWorkspace(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"enrich", "summary", "report"} {
		_, err := runFatura(t, sub, "--dir", dir)
		require.Error(t, err, "%s should fail without fatura.yaml", sub)
	}
}
