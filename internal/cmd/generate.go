package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tpaseed/cli/internal/config"
	"github.com/tpaseed/cli/internal/install"
	"github.com/tpaseed/cli/internal/output"
	"github.com/tpaseed/cli/internal/prompt"
	"github.com/tpaseed/cli/internal/scaffold"
	"github.com/tpaseed/cli/internal/templates"
)

type generateFlags struct {
	skipInstall        bool
	skipInstallMessage bool
	dir                string
	template           string
	ghUser             string
	testHarness        bool
}

// newGenerateCmd creates the command that scaffolds a new element. It is
// the root command of the binary.
func newGenerateCmd(g *GlobalConfig) *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "tpa-seed <element-name>",
		Short: "Scaffold a Polymer custom element",
		Long: `Scaffold a new custom element project from the tpa-seed-element template.

The element name is a custom element tag name: lowercase and containing at
least one hyphen. It names the element, its main HTML file and its package.

Every occurrence of tpa-seed-element in the template, in file names and in
file contents, is replaced with the element name. bower.json is rewritten for
the new element, the test harness is included on request, and bower install
runs at the end.

Examples:
  # Scaffold into the current directory, answering the prompts
  tpa-seed my-widget

  # Scaffold into a new directory without prompts or installation
  tpa-seed my-widget -d my-widget --gh-user octocat --test-harness --skip-install

  # Use a template checked out on disk
  tpa-seed my-widget --template ~/src/tpa-seed-template`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runGenerate(c, args, g, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.skipInstall, "skip-install", false,
		"Do not run the dependency installer")
	cmd.Flags().BoolVar(&flags.skipInstallMessage, "skip-install-message", false,
		"Do not print installer status messages")
	cmd.Flags().StringVarP(&flags.dir, "dir", "d", ".",
		"Destination directory")
	cmd.Flags().StringVarP(&flags.template, "template", "t", "",
		"Template root on disk (env: TPA_SEED_TEMPLATE_DIR, default: built-in template)")
	cmd.Flags().StringVar(&flags.ghUser, "gh-user", "",
		"GitHub username; skips the prompt")
	cmd.Flags().BoolVar(&flags.testHarness, "test-harness", false,
		"Include web-component-tester; skips the prompt")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string, g *GlobalConfig, flags *generateFlags) error {
	elementName := args[0]
	if err := scaffold.CheckName(elementName); err != nil {
		return err
	}

	templateDir := config.ResolveTemplateDir(flags.template, g.Config)
	installCmd := config.ResolveInstallCommand(g.Config)
	config.LogResolvedValues(templateDir, installCmd)

	dir, err := config.ExpandPath(templateDir.Value)
	if err != nil {
		return fmt.Errorf("expanding template path: %w", err)
	}
	source, err := templates.Resolve(dir)
	if err != nil {
		return err
	}
	output.Debug("using template", "root", source.Root)

	var presets scaffold.Presets
	if cmd.Flags().Changed("gh-user") {
		presets.GitHubUser = &flags.ghUser
	}
	if cmd.Flags().Changed("test-harness") {
		presets.IncludeTestHarness = &flags.testHarness
	}

	s := scaffold.New(source, nil, choosePrompter(cmd, g))
	result, err := s.Run(cmd.Context(), scaffold.Options{
		ElementName: elementName,
		Destination: flags.dir,
		Presets:     presets,
	})
	if err != nil {
		return err
	}

	described := describeFiles(elementName, result.Files)
	for _, f := range result.Overwritten {
		described[f] = strings.TrimSpace(described[f] + " " +
			output.StatusStyle(output.StatusOverwritten).Render("("+output.StatusOverwritten+")"))
	}
	output.Println(output.RenderFileTree(filepath.Base(result.Destination), described))
	output.Println(output.FormatCheckmark(fmt.Sprintf("Created %s in %s",
		output.StyleNoun.Render(elementName), result.Destination)))

	install.New(g.Runner).Install(cmd.Context(), install.Options{
		Command:     installCmd.Value,
		Dir:         result.Destination,
		SkipInstall: flags.skipInstall,
		SkipMessage: flags.skipInstallMessage,
	})

	return nil
}

// choosePrompter returns the injected prompter, a terminal prompter when
// stdin is a terminal, and a line reader otherwise.
func choosePrompter(cmd *cobra.Command, g *GlobalConfig) prompt.Prompter {
	if g.Prompter != nil {
		return g.Prompter
	}
	if output.IsInputTTY() {
		return &prompt.Terminal{}
	}
	return prompt.NewLines(cmd.InOrStdin(), cmd.OutOrStdout())
}

// describeFiles labels the generated files that have a special role.
func describeFiles(elementName string, files []string) map[string]string {
	described := make(map[string]string, len(files))
	for _, f := range files {
		switch {
		case f == elementName+".html":
			described[f] = "element"
		case f == templates.ManifestFile:
			described[f] = "bower manifest"
		case f == templates.GitIgnoreFile:
			described[f] = "ignore file"
		case templates.InDir(f, templates.TestDir):
			described[f] = "test harness"
		default:
			described[f] = ""
		}
	}
	return described
}
