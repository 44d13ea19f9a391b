package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/strata-lang/strata/internal/cli/config"
	"github.com/strata-lang/strata/runtime/attrs"
)

var inspectServe bool

func init() {
	inspectCmd.Flags().BoolVar(&inspectServe, "serve", false, "Serve build metadata over HTTP")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect build metadata",
	Long:  "Load the metadata from the last build and print the registered attributes and annotations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		metadataPath := filepath.Join(cfg.Build.OutputDir, "strata_metadata.json")
		data, err := os.ReadFile(metadataPath)
		if err != nil {
			return fmt.Errorf("reading %s (run 'strata build' first): %w", metadataPath, err)
		}

		attrs.Reset()
		if err := attrs.RegisterMetadata(data); err != nil {
			return err
		}

		if inspectServe {
			return serveMetadata(cfg, data)
		}

		printMetadata()
		return nil
	},
}

// printMetadata renders the registered metadata to stdout.
func printMetadata() {
	fmt.Printf("Build %s\n\n", attrs.BuildID())

	decls := attrs.Declarations()
	sort.Slice(decls, func(i, j int) bool { return decls[i].Name < decls[j].Name })

	fmt.Printf("Attributes (%d):\n", len(decls))
	for _, decl := range decls {
		attach := ""
		if decl.Attach != nil {
			attach = fmt.Sprintf(" attach(%s)", decl.Attach.ContextType)
		}
		fmt.Printf("  @%s [%s] targets %v, %d param(s)%s\n",
			decl.Name, decl.Origin, decl.Targets, len(decl.Params), attach)
	}

	uses := attrs.Uses()
	fmt.Printf("\nAnnotations (%d):\n", len(uses))
	for _, use := range uses {
		fmt.Printf("  %s %s: @%s\n", use.Kind, use.Element, use.Attribute)
	}

	entries := attrs.BootstrapEntries()
	fmt.Printf("\nBootstrap order (%d hook(s)):\n", len(entries))
	for i, entry := range entries {
		fmt.Printf("  %d. @%s on %s via %s\n", i+1, entry.Attribute, entry.Element, entry.Context)
	}
}

// serveMetadata exposes the build metadata over HTTP for editor tooling.
func serveMetadata(cfg *config.Config, raw []byte) error {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/metadata", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(raw)
	})

	r.Get("/declarations", func(w http.ResponseWriter, req *http.Request) {
		decls := attrs.Declarations()
		sort.Slice(decls, func(i, j int) bool { return decls[i].Name < decls[j].Name })
		writeJSON(w, decls)
	})

	r.Get("/elements/{name}", func(w http.ResponseWriter, req *http.Request) {
		element := chi.URLParam(req, "name")
		instances := []attrs.Instance{}
		for instance := range attrs.Attributes(element) {
			instances = append(instances, instance)
		}
		writeJSON(w, instances)
	})

	addr := fmt.Sprintf(":%d", cfg.Inspect.Port)
	fmt.Printf("Serving build metadata on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, r)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.Encode(v)
}
