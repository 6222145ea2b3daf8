// Command glance is an interactive terminal browser for a repository's
// commit log, with vim-style modal keybindings and a command prompt for
// ad-hoc shell templates over the selected or current commit.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sevenam/glance/internal/app"
	"github.com/sevenam/glance/internal/command"
	"github.com/sevenam/glance/internal/ui"
)

var repositoryFlag string

func main() {
	root := &cobra.Command{
		Use:   "glance [revision-range...]",
		Short: "an interactive terminal browser for a repository's commit log",
		Args:  cobra.ArbitraryArgs,
		RunE:  run,
	}
	root.Flags().StringVarP(&repositoryFlag, "repository", "r", ".", "path to the repository")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	repoPath, err := filepath.Abs(repositoryFlag)
	if err != nil {
		return fmt.Errorf("resolve repository path: %w", err)
	}
	repoPath, err = filepath.EvalSymlinks(repoPath)
	if err != nil {
		return fmt.Errorf("canonicalize repository path: %w", err)
	}
	if info, err := os.Stat(repoPath); err != nil || !info.IsDir() {
		return fmt.Errorf("repository path %q is not a directory", repoPath)
	}

	logFile, err := os.OpenFile("glance.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	a := app.New(repoPath, args)
	registry := command.NewRegistry().AddCommands(command.Builtins())
	model := ui.New(a, registry, ui.DefaultKeymap())

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	defer func() {
		if r := recover(); r != nil {
			log.Printf("recovered from panic: %v", r)
		}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
