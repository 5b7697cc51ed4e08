package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"game-studio/internal/config"
	"game-studio/internal/env"
	"game-studio/internal/templates"
)

func main() {
	var cfgPath string
	var prefs config.Prefs

	rootCmd := &cobra.Command{
		Use:   "studio",
		Short: "Game studio: edit a 3D game project from a console, an HTTP API or a viewer",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err := env.Load(".env"); err != nil {
				return fmt.Errorf("loading .env: %w", err)
			}
			p, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("loading %s: %w", cfgPath, err)
			}
			prefs = p
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath, "preferences file")

	rootCmd.AddCommand(editCmd(&prefs))
	rootCmd.AddCommand(serveCmd(&prefs))
	rootCmd.AddCommand(viewCmd(&prefs))
	rootCmd.AddCommand(templatesCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func editCmd(prefs *config.Prefs) *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a project from a line console on stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if template == "" {
				template = prefs.DefaultTemplate
			}
			return runEdit(cmd.Context(), *prefs, template, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "", "open this template on start (default from preferences)")
	return cmd
}

func serveCmd(prefs *config.Prefs) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the project document over a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = prefs.ServerAddr
			}
			return runServe(cmd.Context(), *prefs, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from preferences)")
	return cmd
}

func viewCmd(prefs *config.Prefs) *cobra.Command {
	var fullscreen bool

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the 3D viewer with the console overlay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runView(cmd.Context(), *prefs, fullscreen)
		},
	}

	cmd.Flags().BoolVarP(&fullscreen, "fullscreen", "f", false, "open fullscreen")
	return cmd
}

func templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the starter templates",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, t := range templates.Names() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s: %s\n", t.ID, t.Name, t.Description)
			}
		},
	}
}
