package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"sapcli/internal/config"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sapcli configuration",
}

var configSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create or update configuration",
	Long:  `Interactive setup to create or update the sapcli configuration file.`,
	RunE:  runConfigSetup,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetupCmd)
}

func runConfigSetup(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("sapcli Configuration Setup")
	fmt.Println("==========================")
	fmt.Println()

	profileName := prompt(reader, "Profile name", "default")

	host := prompt(reader, "Application server host", "")
	if host == "" {
		return fmt.Errorf("host is required")
	}

	client := prompt(reader, "Client", "001")

	sslAnswer := prompt(reader, "Use HTTPS? (y/n)", "y")
	ssl := strings.ToLower(sslAnswer) == "y"

	defaultPort := config.DefaultHTTPSPort
	if !ssl {
		defaultPort = config.DefaultHTTPPort
	}
	portStr := prompt(reader, "Port", strconv.Itoa(defaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid port: %s", portStr)
	}

	user := prompt(reader, "Username", "")
	if user == "" {
		return fmt.Errorf("username is required")
	}

	password, err := promptPassword(reader, "Password")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	p := &config.Profile{
		Host:     host,
		Port:     port,
		Client:   client,
		User:     strings.ToUpper(user),
		Password: password,
		SSL:      &ssl,
	}
	if err := p.Validate(); err != nil {
		return err
	}

	c, err := loadOrInitConfig(cfgFile, profileName)
	if err != nil {
		return err
	}

	c.Profiles[profileName] = p

	if len(c.Profiles) > 1 {
		setDefault := prompt(reader, fmt.Sprintf("Set '%s' as default profile? (y/n)", profileName), "y")
		if strings.ToLower(setDefault) == "y" {
			c.DefaultProfile = profileName
		}
	} else {
		c.DefaultProfile = profileName
	}

	if err := c.Save(cfgFile); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("Configuration saved successfully!")
	fmt.Printf("Default profile: %s\n", c.DefaultProfile)

	return nil
}

// loadOrInitConfig starts a new configuration only when none exists yet, so
// an unreadable or invalid file is never overwritten.
func loadOrInitConfig(path, profileName string) (*config.Config, error) {
	c, err := config.Load(path)
	if errors.Is(err, config.ErrNotFound) {
		return &config.Config{
			Profiles:       make(map[string]*config.Profile),
			DefaultProfile: profileName,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load existing config: %w", err)
	}
	if c.Profiles == nil {
		c.Profiles = make(map[string]*config.Profile)
	}
	return c, nil
}

func prompt(reader *bufio.Reader, label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", label, defaultVal)
	} else {
		fmt.Printf("%s: ", label)
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultVal
	}
	return input
}

func promptPassword(reader *bufio.Reader, label string) (string, error) {
	fmt.Printf("%s: ", label)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		password, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(password), nil
	}

	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input), nil
}
