package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/quill"
	"github.com/cwbudde/quill/internal/diag"
	"github.com/cwbudde/quill/internal/lexer"
	"github.com/cwbudde/quill/internal/parser"
	"github.com/spf13/cobra"
)

var (
	evalExpr string
	dumpAST  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a quill file or expression",
	Long: `Execute a quill program from a file or inline expression.

Examples:
  # Run a script file
  quill run script.ql

  # Evaluate an inline expression
  quill run -e "print 1 + 2;"

  # Run with AST dump (for debugging)
  quill run --dump-ast script.ql`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	var source, filename string

	switch {
	case evalExpr != "":
		source = evalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		source = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	if dumpAST {
		dumpProgramAST(source)
	}

	result := quill.Run(source)
	for _, line := range result.Output {
		fmt.Println(line)
	}

	if !result.Succeeded {
		for _, d := range result.Errors {
			if verbose {
				fmt.Fprintln(os.Stderr, d.FormatWithContext(source, 1))
			} else {
				fmt.Fprintln(os.Stderr, d.Format())
			}
		}
		return fmt.Errorf("%s: execution failed with %d error(s)", filename, len(result.Errors))
	}
	return nil
}

// dumpProgramAST re-runs just the lexer and parser to print the AST without
// running the program — it deliberately ignores resolution/runtime errors
// so `--dump-ast` still shows the tree for programs that fail later phases.
func dumpProgramAST(source string) {
	reporter := diag.New()
	tokens := lexer.New(source).Tokenize()
	prog := parser.New(tokens, reporter).Parse()
	if prog == nil {
		fmt.Fprintln(os.Stderr, "AST: <parse failed>")
		return
	}
	fmt.Println("AST:")
	fmt.Println(prog.String())
	fmt.Println()
}
