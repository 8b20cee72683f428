package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/diillson/envcheck-reports/internal/shared/types"
)

// Level controla quais mensagens de log são exibidas.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// ParseLevel converte o nome do nível (DEBUG, INFO, WARNING, ERROR). Valores
// desconhecidos caem em INFO.
func ParseLevel(name string) Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug
	case "WARNING", "WARN":
		return LevelWarning
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Console é uma implementação do ConsoleInterface.
type Console struct {
	level Level
	out   io.Writer

	debug   *pterm.PrefixPrinter
	info    *pterm.PrefixPrinter
	warning *pterm.PrefixPrinter
	err     *pterm.PrefixPrinter
	success *pterm.PrefixPrinter
}

// NewConsole cria um novo Console que escreve em stdout.
func NewConsole(level Level) *Console {
	return NewConsoleWithWriter(level, os.Stdout)
}

// NewConsoleWithWriter cria um Console que escreve em out.
func NewConsoleWithWriter(level Level, out io.Writer) *Console {
	return &Console{
		level:   level,
		out:     out,
		debug:   pterm.Debug.WithDebugger(false).WithWriter(out),
		info:    pterm.Info.WithWriter(out),
		warning: pterm.Warning.WithWriter(out),
		err:     pterm.Error.WithWriter(out),
		success: pterm.Success.WithWriter(out),
	}
}

// Level retorna o nível de log atual.
func (c *Console) Level() Level {
	return c.level
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Fprint(c.out, a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

// LogDebug registra uma mensagem de debug, apenas no nível DEBUG.
func (c *Console) LogDebug(format string, a ...interface{}) {
	if c.level > LevelDebug {
		return
	}
	c.debug.Printfln(format, a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	if c.level > LevelInfo {
		return
	}
	c.info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	if c.level > LevelWarning {
		return
	}
	c.warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro. Sempre exibida.
func (c *Console) LogError(format string, a ...interface{}) {
	c.err.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	if c.level > LevelInfo {
		return
	}
	c.success.Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada. Fora do
// stdout o spinner vira uma linha de log.
func (c *Console) Status(message string) types.StatusHandle {
	if c.out != os.Stdout {
		c.LogInfo("%s", message)
		return &statusHandle{}
	}
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		_ = h.spinner.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}
