package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"resultctl/pkg/config"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.LoadFile()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set API Endpoint", "api"),
						huh.NewOption("Set Cache Duration", "ttl"),
						huh.NewOption("Set Parallel Requests", "workers"),
						huh.NewOption("Set Default Student ID", "student"),
						huh.NewOption("Set Output Directory", "output"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "theme":
			err = runSetThemeTUI(cfg)
		case "api":
			err = runSetTextTUI(cfg, "API endpoint base URL", config.Defaults().APIBaseURL, &cfg.APIBaseURL, validateURL)
		case "ttl":
			err = runSetTextTUI(cfg, "Cache duration (e.g. 1h, 30m)", config.Defaults().CacheTTL, &cfg.CacheTTL, validateDuration)
		case "workers":
			err = runSetWorkersTUI(cfg)
		case "student":
			err = runSetTextTUI(cfg, "Default Student ID", "", &cfg.DefaultStudentID, nil)
		case "output":
			err = runSetTextTUI(cfg, "Directory for downloaded transcripts", ".", &cfg.OutputDir, nil)
		case "view":
			printConfig()
		}

		if err != nil {
			return err
		}
	}
}

func printConfig() {
	effective, err := config.Load()
	if err != nil {
		fmt.Println(errorStyle.Render(err.Error()))
		return
	}

	fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.resultctl.json) ---"))
	fmt.Printf("API Endpoint: %s\n", effective.APIBaseURL)
	fmt.Printf("Cache Duration: %s\n", effective.TTL())
	fmt.Printf("Request Timeout: %s\n", effective.Timeout())
	fmt.Printf("Workers: %d\n", effective.Workers)
	if effective.DefaultStudentID == "" {
		fmt.Println("Default Student ID: Not set")
	} else {
		fmt.Printf("Default Student ID: %s\n", effective.DefaultStudentID)
	}
	fmt.Printf("Output Directory: %s\n", orDefault(effective.OutputDir, "."))
	fmt.Printf("Accent Color: %s\n", effective.AccentColor)
	fmt.Println()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func validateURL(s string) error {
	if s != "" && !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return fmt.Errorf("must start with http:// or https://")
	}
	return nil
}

func validateDuration(s string) error {
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fmt.Errorf("must be a positive duration like 1h or 45m")
	}
	return nil
}

func validateWorkers(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive whole number")
	}
	return nil
}

func runSetWorkersTUI(cfg *config.AppConfig) error {
	value := strconv.Itoa(cfg.Workers)
	if cfg.Workers == 0 {
		value = strconv.Itoa(config.Defaults().Workers)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Parallel Requests").
				Description("How many semesters are fetched at the same time.").
				Value(&value).
				Validate(validateWorkers),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	n, _ := strconv.Atoi(strings.TrimSpace(value))
	cfg.Workers = n
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Parallel requests set to %d.\n", n)))
	return nil
}

// runSetTextTUI edits one string setting. An empty answer restores the default.
func runSetTextTUI(cfg *config.AppConfig, title, placeholder string, field *string, validate func(string) error) error {
	value := *field

	input := huh.NewInput().
		Title(title).
		Description("Leave empty to use the default.").
		Placeholder(placeholder).
		Value(&value)
	if validate != nil {
		input = input.Validate(validate)
	}

	if err := huh.NewForm(huh.NewGroup(input)).WithTheme(GetTheme()).Run(); err != nil {
		return err
	}

	*field = strings.TrimSpace(value)
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ %s saved.\n", title)))
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color for resultctl").
				Description("Select a curated style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Violet", colorBlock("99")), "99"),
					huh.NewOption(fmt.Sprintf("%s Graduation Green", colorBlock("42")), "42"),
					huh.NewOption(fmt.Sprintf("%s Ocean Blue", colorBlock("86")), "86"),
					huh.NewOption(fmt.Sprintf("%s Amber", colorBlock("214")), "214"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(validateHex),
			),
		).WithTheme(GetCustomTheme(cfg.AccentColor))

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ The theme color is now saved.\n"))
	return nil
}

func validateHex(str string) error {
	if len(str) != 7 || !strings.HasPrefix(str, "#") {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	if _, err := strconv.ParseUint(str[1:], 16, 32); err != nil {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	return nil
}
