package main

import (
	"context"
	"fmt"
	"os"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"mailedit/bundle"
	"mailedit/dom"
	"mailedit/jsx"
	"mailedit/render"
	"mailedit/scaffold"
	"mailedit/server"
	"mailedit/state"
)

func runServe(ctx context.Context, _ *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if err := env.OpenStores(); err != nil {
		return fmt.Errorf("unable to open stores: %w", err)
	}

	srv := server.New(env.Cfg, env.Store, env.Assets, env.Brands, env.Log)
	return srv.Run(ctx)
}

func runRender(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() == 0 {
		return fmt.Errorf("no source file specified")
	}
	fname := cmd.Args().Get(0)

	data, err := os.ReadFile(fname)
	if err != nil {
		return fmt.Errorf("unable to read source file '%s': %w", fname, err)
	}
	source := string(data)

	if cmd.Bool("tagged") {
		if source, err = jsx.InjectIdentifiers(source, env.Log); err != nil {
			return fmt.Errorf("unable to tag source '%s': %w", fname, err)
		}
	}

	r := render.NewRenderer(time.Duration(env.Cfg.Render.TimeoutSec)*time.Second, env.Log)
	html, err := r.Render(ctx, source)
	if err != nil {
		return fmt.Errorf("unable to render '%s': %w", fname, err)
	}

	if env.Rpt != nil {
		if doc, err := dom.ParseDocument(html, env.Log); err == nil {
			env.Rpt.StoreData("render/dom-tree.txt", []byte(doc.Dump()))
		}
	}

	out := os.Stdout
	if dest := cmd.Args().Get(1); len(dest) > 0 {
		if out, err = os.Create(dest); err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", dest, err)
		}
		defer out.Close()
	}
	if _, err = out.WriteString(html); err != nil {
		return fmt.Errorf("unable to write rendered output: %w", err)
	}
	return nil
}

func runNew(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	name := cmd.Args().Get(0)
	if len(name) == 0 {
		return fmt.Errorf("no template name specified")
	}

	starter := cmd.String("starter")
	if len(starter) == 0 {
		starter = env.Cfg.Editor.DefaultStarter
	}
	kitName := cmd.String("kit")
	if len(kitName) == 0 {
		kitName = env.Cfg.Editor.DefaultBrandKit
	}
	kit, ok := env.Brands.Kit(kitName)
	if !ok {
		return fmt.Errorf("unknown brand kit '%s'", kitName)
	}

	source, err := scaffold.Generate(starter, scaffold.Params{
		Name:    name,
		Preview: cmd.String("preview"),
		Kit:     kit,
	})
	if err != nil {
		return fmt.Errorf("unable to generate template: %w", err)
	}

	if err := env.OpenStores(); err != nil {
		return fmt.Errorf("unable to open stores: %w", err)
	}
	t, err := env.Store.Create(ctx, name, source)
	if err != nil {
		return fmt.Errorf("unable to store template '%s': %w", name, err)
	}

	env.Log.Info("Template created", zap.String("id", t.ID.String()), zap.String("slug", t.Slug), zap.String("starter", starter))
	fmt.Fprintf(os.Stdout, "%s\t%s\t%s\n", t.ID, t.Slug, t.Name)
	return nil
}

func runList(ctx context.Context, _ *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if err := env.OpenStores(); err != nil {
		return fmt.Errorf("unable to open stores: %w", err)
	}

	list, err := env.Store.List(ctx)
	if err != nil {
		return fmt.Errorf("unable to list templates: %w", err)
	}
	for _, t := range list {
		fmt.Fprintf(os.Stdout, "%s\t%s\t%s\t%s\n", t.ID, t.Slug, t.UpdatedAt.Format(time.RFC3339), t.Name)
	}
	return nil
}

func runExport(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	fname := cmd.Args().Get(0)
	if len(fname) == 0 {
		return fmt.Errorf("no destination file specified")
	}

	if err := env.OpenStores(); err != nil {
		return fmt.Errorf("unable to open stores: %w", err)
	}

	out, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
	}
	defer out.Close()

	if err := bundle.Export(ctx, env.Store, out, env.Log); err != nil {
		return fmt.Errorf("unable to export bundle: %w", err)
	}
	env.Log.Info("Bundle exported", zap.String("file", fname))
	return nil
}

func runImport(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	fname := cmd.Args().Get(0)
	if len(fname) == 0 {
		return fmt.Errorf("no source file specified")
	}

	if err := env.OpenStores(); err != nil {
		return fmt.Errorf("unable to open stores: %w", err)
	}

	imported, err := bundle.ImportFile(ctx, env.Store, fname, env.Log)
	if err != nil {
		return fmt.Errorf("unable to import bundle '%s': %w", fname, err)
	}
	for _, t := range imported {
		fmt.Fprintf(os.Stdout, "%s\t%s\t%s\n", t.ID, t.Slug, t.Name)
	}
	env.Log.Info("Bundle imported", zap.String("file", fname), zap.Int("templates", len(imported)))
	return nil
}
