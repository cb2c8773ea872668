package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/five82/warpdeck/internal/app"
	"github.com/five82/warpdeck/internal/engine"
	"github.com/five82/warpdeck/internal/worlds"
)

var (
	warpsSearch     string
	warpsVisibility string
	warpsWorld      string
	warpsCreator    string
	warpsPage       int
	warpsSize       int
)

var warpsCmd = &cobra.Command{
	Use:   "warps",
	Short: "Print one filtered page of warps",
	Long: `Fetch every warp from the server, apply the filters and print the
requested page as plain text. Pages are numbered from 1; out-of-range pages
are clamped to the last page.

Examples:
  warpdeck warps --visibility private
  warpdeck warps --search shop --page 2 --size 20`,
	Args: cobra.NoArgs,
	RunE: runWarps,
}

func init() {
	rootCmd.AddCommand(warpsCmd)
	flags := warpsCmd.Flags()
	flags.StringVarP(&warpsSearch, "search", "s", "", "case-insensitive name substring")
	flags.StringVar(&warpsVisibility, "visibility", "all", "all, public or private")
	flags.StringVar(&warpsWorld, "world", engine.All, "exact world id")
	flags.StringVar(&warpsCreator, "creator", engine.All, "exact creator name")
	flags.IntVarP(&warpsPage, "page", "p", 1, "page number")
	flags.IntVar(&warpsSize, "size", 15, "warps per page")
}

func runWarps(cmd *cobra.Command, args []string) error {
	visibility, err := engine.ParseVisibility(warpsVisibility)
	if err != nil {
		return err
	}
	if warpsSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", warpsSize)
	}

	session, err := app.Open(cmd.Context(), options())
	if err != nil {
		return err
	}
	defer session.Close()

	criteria := engine.Criteria{
		Search:     warpsSearch,
		Visibility: visibility,
		World:      warpsWorld,
		Creator:    warpsCreator,
	}.Normalized()
	listing, err := session.Warps(cmd.Context(), criteria, engine.Page{Current: warpsPage - 1, Size: warpsSize})
	if err != nil {
		return err
	}
	printListing(cmd.OutOrStdout(), listing, criteria, session.Names())
	return nil
}

func printListing(w io.Writer, listing app.WarpListing, criteria engine.Criteria, names worlds.Names) {
	if listing.TotalElements == 0 {
		if listing.Loaded == 0 {
			fmt.Fprintln(w, "No warps on this server.")
		} else {
			fmt.Fprintf(w, "No warps match the filters (%d loaded).\n", listing.Loaded)
		}
		return
	}

	fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
		pad("NAME", 20), pad("CREATOR", 16), pad("WORLD", 14), pad("COORDINATES", 18), "VISIBILITY")
	for _, warp := range listing.Items {
		fmt.Fprintf(w, "%s  %s  %s  %s  %s\n",
			pad(warp.Name, 20),
			pad(warp.Creator, 16),
			pad(names.Display(warp.World), 14),
			pad(warp.Coordinates(), 18),
			visibilityLabel(warp.Private()))
	}

	summary := fmt.Sprintf("%d–%d of %d · page %d/%d", listing.Start, listing.End, listing.TotalElements, listing.EffectivePage+1, listing.TotalPages)
	if criteria.Active() {
		summary += fmt.Sprintf(" · showing %d of %d warps", listing.TotalElements, listing.Loaded)
	}
	if listing.Skipped > 0 {
		summary += fmt.Sprintf(" · %d malformed skipped", listing.Skipped)
	}
	fmt.Fprintln(w, strings.TrimSpace(summary))
}

func visibilityLabel(private, known bool) string {
	switch {
	case !known:
		return "unknown"
	case private:
		return "private"
	default:
		return "public"
	}
}

func pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}
