package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [project-name]",
	Short: "Create a new Strata project",
	Long:  "Scaffold a new Strata project with a strata.yml and an example source file",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		} else {
			prompt := &survey.Input{
				Message: "Project name:",
				Default: "my-app",
			}
			if err := survey.AskOne(prompt, &name, survey.WithValidator(survey.Required)); err != nil {
				return err
			}
		}

		withExample := true
		if len(args) == 0 {
			prompt := &survey.Confirm{
				Message: "Include an example attribute?",
				Default: true,
			}
			if err := survey.AskOne(prompt, &withExample); err != nil {
				return err
			}
		}

		if _, err := os.Stat(name); err == nil {
			return fmt.Errorf("directory %s already exists", name)
		}

		if err := os.MkdirAll(filepath.Join(name, "src"), 0o755); err != nil {
			return fmt.Errorf("creating project directory: %w", err)
		}

		configContent := fmt.Sprintf(`project:
  name: %s

build:
  source_dir: src
  output_dir: build

inspect:
  port: 4000
`, name)
		if err := os.WriteFile(filepath.Join(name, "strata.yml"), []byte(configContent), 0o644); err != nil {
			return fmt.Errorf("writing strata.yml: %w", err)
		}

		if withExample {
			if err := os.WriteFile(filepath.Join(name, "src", "main.sta"), []byte(exampleSource), 0o644); err != nil {
				return fmt.Errorf("writing example source: %w", err)
			}
		}

		fmt.Printf("Created project %s\n", name)
		fmt.Println("  cd " + name)
		fmt.Println("  strata build")
		return nil
	},
}

const exampleSource = `attribute Route(path: String, method: String = "GET") targets Method {
  attach(ctx: MethodContext): Void {
    register_route(ctx)
  }
}

attribute Deprecated(reason: String = "") targets Class, Method

class UserController {
  @Route(path: "/users")
  fn index() {
    list_users()
  }

  @Deprecated(reason: "use index")
  @Route(path: "/users/all", method: "GET")
  fn all() {
    list_users()
  }
}
`
