package export

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Sheet é uma aba já montada: cabeçalhos e valores na mesma ordem
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

type WorkbookWriter interface {
	Write(w io.Writer, sheets []Sheet) error
}

type xlsxWriter struct{}

func NewXLSXWriter() WorkbookWriter {
	return &xlsxWriter{}
}

// Write grava as abas na ordem recebida. A aba padrão do excelize é
// renomeada para a primeira aba, então o arquivo não tem "Sheet1" vazia.
func (x *xlsxWriter) Write(w io.Writer, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("nenhuma aba para exportar")
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logrus.WithError(err).Warn("export: failed to close workbook")
		}
	}()

	used := make(map[string]int, len(sheets))
	for i, sheet := range sheets {
		name := sheetName(sheet.Name, used)

		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return fmt.Errorf("erro ao renomear a aba %s: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("erro ao criar a aba %s: %w", name, err)
		}

		if err := writeSheet(f, name, sheet); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("erro ao gravar a planilha: %w", err)
	}

	return nil
}

func writeSheet(f *excelize.File, name string, sheet Sheet) error {
	header := make([]any, len(sheet.Headers))
	for i, h := range sheet.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("erro ao gravar o cabeçalho da aba %s: %w", name, err)
	}

	for r, values := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		row := values
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("erro ao gravar a linha %d da aba %s: %w", r+1, name, err)
		}
	}

	return nil
}

// sheetName respeita o limite de 31 caracteres do Excel e evita nomes repetidos
func sheetName(name string, used map[string]int) string {
	runes := []rune(name)
	if len(runes) == 0 {
		runes = []rune("Sheet")
	}
	if len(runes) > 31 {
		runes = runes[:31]
	}

	base := string(runes)
	used[base]++
	if used[base] == 1 {
		return base
	}

	suffix := fmt.Sprintf(" (%d)", used[base])
	if len(runes)+len([]rune(suffix)) > 31 {
		runes = runes[:31-len([]rune(suffix))]
	}
	return string(runes) + suffix
}
