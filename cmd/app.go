package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/app"
	"github.com/abhisek/mathsheet/internal/screens/generator"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	svc, err := newService(ctx, st, settings.GeneratorOptions())
	if err != nil {
		return err
	}

	root := generator.New(generator.Deps{
		Service:   svc,
		Logger:    logger,
		Locale:    settings.SessionLocale(),
		OutputDir: outputDir(""),
		Form:      settings.Form(),
		Policy:    settings.Policy(),
	})
	return app.Run(ctx, root, svc.Model())
}
