package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"gallery-go/internal/gallery"
	"gallery-go/internal/model"
)

const browseHelp = `Type to search titles and descriptions. Commands:
  :sort popularity|year   change the ordering
  :quit                   leave
`

// printArtworks writes one line per artwork.
func printArtworks(out io.Writer, artworks []model.Artwork) {
	if len(artworks) == 0 {
		fmt.Fprintln(out, "No artworks found.")
		return
	}
	for _, a := range artworks {
		fmt.Fprintf(out, "%3d  %-32s %4d  %-10s #%d\n", a.ID, a.Title, a.Year, a.Type, a.Popularity)
	}
}

// syncWriter serializes renders from the debounce goroutine with prompt
// output from the input loop.
type syncWriter struct {
	mu  sync.Mutex
	out io.Writer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Write(p)
}

// renderTo returns a RenderFunc that prints each result set to out.
func renderTo(out io.Writer) gallery.RenderFunc {
	return func(results []model.Artwork) {
		var sb strings.Builder
		fmt.Fprintf(&sb, "\n-- %d artworks --\n", len(results))
		printArtworks(&sb, results)
		io.WriteString(out, sb.String())
	}
}

// runBrowse feeds lines from in to b until EOF or :quit. A pending search is
// applied before returning on EOF.
func runBrowse(b *gallery.Browser, in io.Reader, out io.Writer, prompt bool) error {
	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(out, "search> ")
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, ":") {
			b.SetSearchTerm(line)
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case ":quit", ":q":
			return nil
		case ":sort":
			if len(fields) != 2 {
				fmt.Fprintln(out, "usage: :sort popularity|year")
				continue
			}
			k, err := gallery.ParseSortKey(fields[1])
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			b.FlushSearch()
			b.SetSortBy(k)
		case ":help":
			fmt.Fprint(out, browseHelp)
		default:
			fmt.Fprintf(out, "unknown command %q\n", fields[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	b.FlushSearch()
	return nil
}
