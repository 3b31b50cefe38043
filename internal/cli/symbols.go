package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/texbox/pkg/tex/class"
	"github.com/matzehuels/texbox/pkg/tex/symbol"
)

// symbolsCommand lists the symbol table.
func (c *CLI) symbolsCommand() *cobra.Command {
	var (
		category   string
		delimiters bool
		plain      bool
	)

	cmd := &cobra.Command{
		Use:   "symbols [filter]",
		Short: "List the named symbols",
		Long: `List the symbols known to the engine with their category, font and
Unicode character. An optional filter keeps names containing it.`,
		Example: `  texbox symbols arrow
  texbox symbols --category rel
  texbox symbols --delimiters`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keep, err := symbolFilter(args, category, delimiters)
			if err != nil {
				return err
			}
			e, err := c.newEngine()
			if err != nil {
				return err
			}
			syms := e.Symbols.Symbols(keep)
			if plain {
				for _, s := range syms {
					fmt.Fprintf(c.Out, "%s\t%s\t%s\t%c\n", s.Name, s.Type, s.Font, s.C)
				}
				return nil
			}
			fmt.Fprintln(c.Out, symbolTable(syms))
			printDetail("%d symbols", len(syms))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category (ord, op, bin, rel, open, close, punct, inner)")
	cmd.Flags().BoolVar(&delimiters, "delimiters", false, "only symbols usable after \\left and \\right")
	cmd.Flags().BoolVar(&plain, "plain", false, "tab-separated output without a table")
	return cmd
}

// symbolFilter builds the predicate for the command's filters.
func symbolFilter(args []string, category string, delimiters bool) (func(symbol.Symbol) bool, error) {
	var (
		want    class.Type
		byClass = category != ""
	)
	if byClass {
		var err error
		if want, err = class.Parse(category); err != nil {
			return nil, err
		}
	}
	var sub string
	if len(args) == 1 {
		sub = strings.TrimPrefix(args[0], `\`)
	}
	return func(s symbol.Symbol) bool {
		if byClass && s.Type != want {
			return false
		}
		if delimiters && !s.Delimiter {
			return false
		}
		return sub == "" || strings.Contains(s.Name, sub)
	}, nil
}

func symbolTable(syms []symbol.Symbol) string {
	rows := make([][]string, 0, len(syms))
	for _, s := range syms {
		flags := ""
		if s.Delimiter {
			flags = "delim"
		}
		if s.NoLimits {
			flags = strings.TrimSpace(flags + " nolimits")
		}
		rows = append(rows, []string{
			`\` + s.Name,
			string(s.C),
			fmt.Sprintf("U+%04X", s.C),
			s.Type.String(),
			s.Font,
			flags,
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "", "Code", "Category", "Font", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return styleHeader
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleValue
		}).
		String()
}
