package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/newthinker/stockdeck/internal/upstream"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Watchlist operations",
	Long:  `Commands for reading and editing the persisted watchlist.`,
}

var watchlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List watched symbols",
	RunE:  runWatchlistList,
}

var watchlistAddCmd = &cobra.Command{
	Use:   "add SYMBOL...",
	Short: "Add symbols to the watchlist",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatchlistAdd,
}

var watchlistRemoveCmd = &cobra.Command{
	Use:   "remove SYMBOL...",
	Short: "Remove symbols from the watchlist",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatchlistRemove,
}

var watchlistClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every symbol",
	RunE:  runWatchlistClear,
}

var watchlistExportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write the watchlist as JSON or YAML (stdout by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatchlistExport,
}

var watchlistImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the watchlist from a JSON or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchlistImport,
}

var exportFormat string

// watchlistFile is the export document
type watchlistFile struct {
	Symbols []string `json:"symbols" yaml:"symbols"`
}

func init() {
	rootCmd.AddCommand(watchlistCmd)
	watchlistCmd.AddCommand(watchlistListCmd)
	watchlistCmd.AddCommand(watchlistAddCmd)
	watchlistCmd.AddCommand(watchlistRemoveCmd)
	watchlistCmd.AddCommand(watchlistClearCmd)
	watchlistCmd.AddCommand(watchlistExportCmd)
	watchlistCmd.AddCommand(watchlistImportCmd)

	watchlistExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "output format (json or yaml)")
}

func runWatchlistList(cmd *cobra.Command, args []string) error {
	e, err := setup(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	symbols := e.app.Watchlist(cmd.Context())
	if len(symbols) == 0 {
		fmt.Println("Watchlist is empty.")
		return nil
	}
	for _, s := range symbols {
		fmt.Println(s)
	}
	return nil
}

func runWatchlistAdd(cmd *cobra.Command, args []string) error {
	e, err := setup(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	for _, a := range args {
		symbol := strings.ToUpper(strings.TrimSpace(a))
		if err := upstream.ValidateSymbol(symbol); err != nil {
			return err
		}
		switch {
		case e.app.AddToWatchlist(cmd.Context(), symbol):
			fmt.Printf("added %s\n", symbol)
		case e.app.InWatchlist(cmd.Context(), symbol):
			fmt.Printf("%s already watched\n", symbol)
		default:
			return fmt.Errorf("saving watchlist failed while adding %s", symbol)
		}
	}
	return nil
}

func runWatchlistRemove(cmd *cobra.Command, args []string) error {
	e, err := setup(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	for _, a := range args {
		symbol := strings.ToUpper(strings.TrimSpace(a))
		if !e.app.RemoveFromWatchlist(cmd.Context(), symbol) {
			return fmt.Errorf("saving watchlist failed while removing %s", symbol)
		}
		fmt.Printf("removed %s\n", symbol)
	}
	return nil
}

func runWatchlistClear(cmd *cobra.Command, args []string) error {
	e, err := setup(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	if !e.app.ClearWatchlist(cmd.Context()) {
		return fmt.Errorf("saving watchlist failed")
	}
	fmt.Println("Watchlist cleared.")
	return nil
}

func runWatchlistExport(cmd *cobra.Command, args []string) error {
	e, err := setup(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	var out io.Writer = os.Stdout
	if len(args) == 1 {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("creating %s: %w", args[0], err)
		}
		defer f.Close()
		out = f
	}

	doc := watchlistFile{Symbols: e.app.Watchlist(cmd.Context())}
	if err := encodeWatchlist(out, exportFormat, doc); err != nil {
		return err
	}
	e.log.Debug("watchlist exported", zap.Int("count", len(doc.Symbols)), zap.String("format", exportFormat))
	return nil
}

func runWatchlistImport(cmd *cobra.Command, args []string) error {
	e, err := setup(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	doc, err := decodeWatchlist(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	symbols := make([]string, 0, len(doc.Symbols))
	for _, s := range doc.Symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if err := upstream.ValidateSymbol(s); err != nil {
			return err
		}
		symbols = append(symbols, s)
	}

	if !e.app.ReplaceWatchlist(cmd.Context(), symbols) {
		return fmt.Errorf("saving watchlist failed")
	}
	fmt.Printf("Imported %d symbols.\n", len(e.app.Watchlist(cmd.Context())))
	return nil
}

func encodeWatchlist(w io.Writer, format string, doc watchlistFile) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

// decodeWatchlist accepts the export document or a bare list of symbols, in
// JSON or YAML. YAML is a superset of JSON so one decoder covers both.
func decodeWatchlist(data []byte) (watchlistFile, error) {
	var doc watchlistFile
	if err := yaml.Unmarshal(data, &doc); err == nil && doc.Symbols != nil {
		return doc, nil
	}

	var bare []string
	if err := yaml.Unmarshal(data, &bare); err != nil {
		return watchlistFile{}, err
	}
	return watchlistFile{Symbols: bare}, nil
}
