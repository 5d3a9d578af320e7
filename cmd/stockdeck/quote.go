package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/newthinker/stockdeck/internal/app"
	"github.com/newthinker/stockdeck/internal/core"
	"github.com/newthinker/stockdeck/internal/quote"
	"github.com/newthinker/stockdeck/internal/upstream"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var quoteCmd = &cobra.Command{
	Use:   "quote SYMBOL...",
	Short: "Show the latest quote for one or more symbols",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuote,
}

var chartCmd = &cobra.Command{
	Use:   "chart SYMBOL",
	Short: "Show a price series summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runChart,
}

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search symbols by ticker or company name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List the biggest movers across the market boards",
	RunE:  runTrending,
}

var watchCmd = &cobra.Command{
	Use:   "watch SYMBOL",
	Short: "Refresh a quote until interrupted",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

var (
	chartRange    string
	fuzzySearch   bool
	trendingLimit int
	watchInterval time.Duration
)

func init() {
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(trendingCmd)
	rootCmd.AddCommand(watchCmd)

	chartCmd.Flags().StringVarP(&chartRange, "range", "r", "1D", "chart range (1D, 5D, 1M, 6M, YTD, 1Y, 5Y, All)")
	searchCmd.Flags().BoolVar(&fuzzySearch, "fuzzy", false, "rank by typo-tolerant similarity")
	trendingCmd.Flags().IntVarP(&trendingLimit, "limit", "n", 10, "number of movers to show")
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 0, "refresh interval (default polling.detail)")
}

func runQuote(cmd *cobra.Command, args []string) error {
	e, err := setup(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	symbols := make([]string, 0, len(args))
	for _, a := range args {
		s := strings.ToUpper(strings.TrimSpace(a))
		if err := upstream.ValidateSymbol(s); err != nil {
			return err
		}
		symbols = append(symbols, s)
	}

	quotes := e.app.Quotes(cmd.Context(), symbols)
	if len(quotes) == 0 {
		fmt.Println("No data.")
		return nil
	}

	printQuotes(quotes)
	e.log.Debug("quotes fetched", zap.Int("requested", len(symbols)), zap.Int("found", len(quotes)))
	return nil
}

func runChart(cmd *cobra.Command, args []string) error {
	e, err := setup(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	symbol := strings.ToUpper(args[0])
	if err := upstream.ValidateSymbol(symbol); err != nil {
		return err
	}

	rng := upstream.LookupRange(chartRange)
	series, ok := e.app.Intraday(cmd.Context(), symbol, rng.Label).Get()
	if !ok {
		fmt.Println("No data.")
		return nil
	}

	st := quote.Stats(series)
	fmt.Printf("%s  %s (%s bars, %d points)\n", quote.DisplaySymbol(symbol), rng.Label, rng.Interval, series.Len())
	fmt.Println("------------------------------")
	fmt.Printf("First:    %s\n", quote.FormatPrice(symbol, st.First))
	fmt.Printf("Last:     %s\n", quote.FormatPrice(symbol, st.Last))
	fmt.Printf("Change:   %s (%s)\n", quote.FormatSignedPrice(symbol, st.Change), quote.FormatChangePercent(st.ChangePercent))
	fmt.Printf("High:     %s\n", quote.FormatPrice(symbol, st.High))
	fmt.Printf("Low:      %s\n", quote.FormatPrice(symbol, st.Low))
	fmt.Printf("Average:  %s\n", quote.FormatPrice(symbol, st.Average))
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	e, err := setup(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	mode := app.ModeSubstring
	if fuzzySearch {
		mode = app.ModeFuzzy
	}

	matches := e.app.Suggest(cmd.Context(), strings.Join(args, " "), mode)
	if len(matches) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tNAME\tTYPE\tREGION\tSCORE\t")
	fmt.Fprintln(w, "------\t----\t----\t------\t-----\t")
	for _, m := range matches {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.3f\t\n", m.Symbol, m.Name, m.Type, m.Region, m.Score)
	}
	return w.Flush()
}

func runTrending(cmd *cobra.Command, args []string) error {
	e, err := setup(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	quotes := e.app.Trending(cmd.Context(), trendingLimit)
	if len(quotes) == 0 {
		fmt.Println("No data.")
		return nil
	}
	printQuotes(quotes)
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	e, err := setup(nil)
	if err != nil {
		return err
	}
	defer e.Close()

	symbol := strings.ToUpper(args[0])
	if err := upstream.ValidateSymbol(symbol); err != nil {
		return err
	}

	interval := watchInterval
	if interval <= 0 {
		interval = e.cfg.Polling.Detail
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	task := e.app.PollQuote(symbol, interval, func(res core.Result[core.Quote]) {
		q, ok := res.Get()
		if !ok {
			fmt.Printf("%s  %s  no data\n", time.Now().Format(time.TimeOnly), symbol)
			return
		}
		v := quote.Render(q)
		fmt.Printf("%s  %s  %s  %s (%s)\n", time.Now().Format(time.TimeOnly), v.DisplaySymbol, v.Price, v.Change, v.ChangePercent)
	})
	defer task.Stop()

	<-ctx.Done()
	e.log.Debug("watch stopped", zap.String("symbol", symbol))
	return nil
}

func printQuotes(quotes []core.Quote) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tPRICE\tCHANGE\tCHANGE %\tVOLUME\tDAY\t")
	fmt.Fprintln(w, "------\t-----\t------\t--------\t------\t---\t")
	for _, q := range quotes {
		v := quote.Render(q)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			v.DisplaySymbol, v.Price, v.Change, v.ChangePercent, v.Volume, v.TradingDay)
	}
	w.Flush()
}
