package main

import (
	"context"
	"fmt"
	"os"

	"photovault/internal/app"
	"photovault/internal/config"
	"photovault/internal/encryption"
	"photovault/internal/gallery"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	// A .env in the working directory can supply PV_* overrides.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a GalleryApp. The caller must defer
// app.Close(). operation identifies the CLI command being run (e.g.
// "Upload", "Ls").
func newApp(ctx context.Context, operation string) (*app.GalleryApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewGalleryApp(ctx, cfg, operation, promptPassphrase)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// promptPassphrase reads a passphrase from the terminal without echo.
func promptPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(passphrase), nil
}

var rootCmd = &cobra.Command{
	Use:   "pv",
	Short: "Personal media vault",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		// Generate a new caller identity
		callerID := uuid.New().String()

		cfg := config.NewConfig(callerID, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Caller ID: %s\n", callerID)
		fmt.Printf("Base Dir:  %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Caller ID:    %s\n", cfg.CallerID)
		fmt.Printf("Base Dir:     %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:      %s\n", cfg.LogDir)
		fmt.Printf("Download Dir: %s\n", cfg.DownloadDir)
		fmt.Printf("Registry:     %s\n", cfg.Registry.Type)
		fmt.Printf("Blob Store:   %s (encrypt=%v)\n", cfg.Blob.Type, cfg.Blob.Encrypt)
		return nil
	},
}

// keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage encryption keys",
}

var keysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate an encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
		if err != nil {
			return fmt.Errorf("creating encryptor: %w", err)
		}
		if enc.IsConfigured() {
			return fmt.Errorf("key pair already exists at %s", cfg.Encryption.PublicKeyPath)
		}

		passphrase, err := promptPassphrase("Choose a key passphrase: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassphrase("Confirm passphrase: ")
		if err != nil {
			return err
		}
		if passphrase != confirm {
			return fmt.Errorf("passphrases do not match")
		}

		if err := enc.Setup(passphrase); err != nil {
			return fmt.Errorf("generating keys: %w", err)
		}

		fmt.Printf("Key pair generated.\nPublic key:  %s\nPrivate key: %s\n",
			cfg.Encryption.PublicKeyPath, cfg.Encryption.PrivateKeyPath)
		return nil
	},
}

// ls command
var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List files grouped by upload date",
	RunE: func(cmd *cobra.Command, args []string) error {
		section, _ := cmd.Flags().GetString("section")
		search, _ := cmd.Flags().GetString("search")

		a, err := newApp(cmd.Context(), "Ls")
		if err != nil {
			return err
		}
		defer a.Close()

		listing, err := a.ListSection(cmd.Context(), section, search)
		if err != nil {
			return err
		}

		switch listing.Empty {
		case gallery.EmptyNoFiles:
			fmt.Println("No files yet.")
			return nil
		case gallery.EmptyNoMatches:
			fmt.Printf("No files match %q.\n", search)
			return nil
		}

		for _, group := range listing.Groups {
			fmt.Println(group.Label)
			for _, f := range group.Files {
				fmt.Printf("  %-36s  %-6s  %9s  %s  %s\n",
					f.ID,
					gallery.TypeLabel(f.MimeType),
					gallery.FormatBytes(f.Size),
					gallery.FormatTimestamp(f.UploadedAt),
					f.Name,
				)
			}
		}
		return nil
	},
}

// upload command
var uploadCmd = &cobra.Command{
	Use:   "upload PATH",
	Short: "Upload a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Upload")
		if err != nil {
			return err
		}
		defer a.Close()

		err = a.UploadPath(cmd.Context(), args[0], func(state gallery.UploadState) {
			fmt.Printf("\r%s  %3d%%", state.FileName, state.Percent)
		})
		fmt.Println()
		return err
	},
}

// download command
var downloadCmd = &cobra.Command{
	Use:   "download [ID...]",
	Short: "Download files (all files when no IDs are given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Download")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Download(cmd.Context(), args)
	},
}

// share command
var shareCmd = &cobra.Command{
	Use:   "share [ID...]",
	Short: "Copy direct links to the clipboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Share")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Share(cmd.Context(), args)
	},
}

// copy-names command
var copyNamesCmd = &cobra.Command{
	Use:   "copy-names [ID...]",
	Short: "Copy file names to the clipboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "CopyNames")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.CopyNames(cmd.Context(), args)
	},
}

// rm command
var rmCmd = &cobra.Command{
	Use:   "rm ID...",
	Short: "Delete files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Rm")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.Delete(cmd.Context(), args)
	},
}

// profile command
var profileCmd = &cobra.Command{
	Use:   "profile [NAME]",
	Short: "View or set the display name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Profile")
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 1 {
			if err := a.SaveProfile(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Display name set to %q\n", args[0])
			return nil
		}

		profile, err := a.Profile(cmd.Context())
		if err != nil {
			return err
		}
		if profile == nil {
			fmt.Println("No profile set.")
			return nil
		}
		fmt.Println(profile.Name)
		return nil
	},
}

// status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show storage usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), "Status")
		if err != nil {
			return err
		}
		defer a.Close()

		used, quota, err := a.Usage(cmd.Context())
		if err != nil {
			return err
		}

		percent := 0.0
		if quota > 0 {
			percent = float64(used) / float64(quota) * 100
		}
		fmt.Printf("Used %s of %s (%.1f%%)\n",
			gallery.FormatBytes(used), gallery.FormatBytes(quota), percent)
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// keys subcommands
	keysCmd.AddCommand(keysInitCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().StringP("section", "s", "gallery", "Section to list: gallery, albums, or library")
	lsCmd.Flags().StringP("search", "q", "", "Filter file names by substring")
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(copyNamesCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().StringP("section", "s", "gallery", "Section to view: gallery, albums, or library")
	viewCmd.Flags().StringP("search", "q", "", "Filter file names by substring")
}
