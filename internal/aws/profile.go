package aws

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/stratusctl/stratus/pkg/types"
)

var (
	sectionRe = regexp.MustCompile(`^\[([^\]]+)\]$`)
	regionRe  = regexp.MustCompile(`^\s*region\s*=\s*(.+)$`)
)

// ListProfiles reads AWS profiles from ~/.aws/credentials and ~/.aws/config
func ListProfiles() ([]types.AWSProfile, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	profileMap := make(map[string]*types.AWSProfile)

	// Credentials file first, the config file may add regions or profiles
	// that only exist there (SSO profiles, etc.)
	if creds, err := parseSharedFile(filepath.Join(home, ".aws", "credentials"), "credentials"); err == nil {
		for _, p := range creds {
			profileMap[p.Name] = &p
		}
	}

	if confs, err := parseSharedFile(filepath.Join(home, ".aws", "config"), "config"); err == nil {
		for _, p := range confs {
			if existing, ok := profileMap[p.Name]; ok {
				if existing.Region == "" && p.Region != "" {
					existing.Region = p.Region
				}
				continue
			}
			profileMap[p.Name] = &p
		}
	}

	var profiles []types.AWSProfile
	for _, p := range profileMap {
		profiles = append(profiles, *p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		// Put "default" first, then sort alphabetically
		if profiles[i].Name == "default" {
			return true
		}
		if profiles[j].Name == "default" {
			return false
		}
		return profiles[i].Name < profiles[j].Name
	})

	return profiles, nil
}

// ValidateProfile checks if a profile exists in the shared config files
func ValidateProfile(name string) bool {
	profiles, err := ListProfiles()
	if err != nil {
		return false
	}

	for _, p := range profiles {
		if p.Name == name {
			return true
		}
	}
	return false
}

// parseSharedFile parses one AWS INI-style file. The config file names
// sections "[profile name]" except for "[default]"; the credentials file
// uses bare "[name]" headers. Section kinds like [sso-session x] are
// ignored.
func parseSharedFile(path, source string) ([]types.AWSProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var profiles []types.AWSProfile
	var current *types.AWSProfile

	flush := func() {
		if current != nil {
			profiles = append(profiles, *current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if m := sectionRe.FindStringSubmatch(line); len(m) == 2 {
			name := strings.TrimSpace(m[1])
			if source == "config" && name != "default" {
				if !strings.HasPrefix(name, "profile ") {
					flush()
					continue
				}
				name = strings.TrimSpace(strings.TrimPrefix(name, "profile "))
			}
			flush()
			current = &types.AWSProfile{
				Name:   name,
				Source: source,
			}
			continue
		}

		// Pick up the region setting inside a profile section
		if current != nil {
			if m := regionRe.FindStringSubmatch(line); len(m) == 2 {
				current.Region = strings.TrimSpace(m[1])
			}
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}
