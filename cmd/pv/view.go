package main

import (
	"fmt"
	"os"
	"strings"

	"photovault/internal/gallery"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// view command: an interactive single-item viewer over the section's
// files. Arrows navigate, space toggles selection of the current item,
// 'a' selects everything, 'c' clears, Escape or 'q' exits.
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse files interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		section, _ := cmd.Flags().GetString("section")
		search, _ := cmd.Flags().GetString("search")

		a, err := newApp(cmd.Context(), "View")
		if err != nil {
			return err
		}
		defer a.Close()

		listing, err := a.ListSection(cmd.Context(), section, search)
		if err != nil {
			return err
		}
		if len(listing.Displayed) == 0 {
			fmt.Println("Nothing to view.")
			return nil
		}

		return runViewer(listing.Displayed, a.Selection())
	},
}

func runViewer(files []gallery.FileRecord, sel *gallery.Selection) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("view requires a terminal")
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	lightbox := gallery.NewLightbox()
	lightbox.Open(files, 0)

	var buf [3]byte
	for lightbox.IsOpen() {
		render(lightbox, sel)

		n, err := os.Stdin.Read(buf[:])
		if err != nil {
			break
		}

		switch {
		case n == 1 && buf[0] == ' ':
			if f, ok := lightbox.Current(); ok {
				sel.Toggle(f.ID)
			}
		case n == 1 && buf[0] == 'a':
			ids := make([]string, len(files))
			for i, f := range files {
				ids[i] = f.ID
			}
			sel.SelectAll(ids)
		case n == 1 && buf[0] == 'c':
			sel.Clear()
		default:
			lightbox.HandleKey(parseKey(buf[:n]))
		}
	}

	fmt.Print("\r\x1b[2K")
	if sel.Active() {
		fmt.Printf("%d file(s) selected\r\n", sel.Count())
	}
	return nil
}

// parseKey maps raw terminal input onto a lightbox key. Arrow keys arrive
// as the three-byte CSI sequences ESC [ C and ESC [ D.
func parseKey(b []byte) gallery.Key {
	switch {
	case len(b) == 1 && (b[0] == 0x1b || b[0] == 'q'):
		return gallery.KeyEscape
	case len(b) == 3 && b[0] == 0x1b && b[1] == '[' && b[2] == 'C':
		return gallery.KeyRight
	case len(b) == 3 && b[0] == 0x1b && b[1] == '[' && b[2] == 'D':
		return gallery.KeyLeft
	default:
		return gallery.KeyNone
	}
}

func render(lightbox *gallery.Lightbox, sel *gallery.Selection) {
	f, ok := lightbox.Current()
	if !ok {
		return
	}

	var marks []string
	if sel.Has(f.ID) {
		marks = append(marks, "*")
	}
	if sel.Active() {
		marks = append(marks, fmt.Sprintf("%d selected", sel.Count()))
	}
	suffix := ""
	if len(marks) > 0 {
		suffix = "  [" + strings.Join(marks, ", ") + "]"
	}

	fmt.Printf("\r\x1b[2K[%d/%d] %s  %s  %s  %s%s",
		lightbox.Index()+1,
		lightbox.Len(),
		f.Name,
		gallery.TypeLabel(f.MimeType),
		gallery.FormatBytes(f.Size),
		gallery.FormatTimestamp(f.UploadedAt),
		suffix,
	)
}
