// Package profile holds the static portfolio data the terminal is built from.
// A profile can come from the built-in defaults or from a YAML file.
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidProfile is returned when a profile fails validation.
var ErrInvalidProfile = errors.New("invalid profile")

// SkillCategory groups related skills under one heading.
type SkillCategory struct {
	Category string   `yaml:"category"`
	Items    []string `yaml:"items"`
}

// Project is one entry of the projects listing.
type Project struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Link        string `yaml:"link"`
}

// Quote is a motto shown by neofetch.
type Quote struct {
	Text   string `yaml:"text"`
	Author string `yaml:"author"`
}

// Profile is the portfolio owner's data.
type Profile struct {
	Name          string          `yaml:"name"`
	Role          string          `yaml:"role"`
	Email         string          `yaml:"email"`
	Username      string          `yaml:"username"` // home directory is /home/<username>
	GitHubUser    string          `yaml:"github_user"`
	LinkedInUser  string          `yaml:"linkedin_user"`
	InstagramUser string          `yaml:"instagram_user"`
	About         string          `yaml:"about"`
	Skills        []SkillCategory `yaml:"skills"`
	Projects      []Project       `yaml:"projects"`
	Location      string          `yaml:"location"`
	Status        string          `yaml:"status"`
	Quotes        []Quote         `yaml:"quotes"`
}

// Default returns the built-in profile.
func Default() *Profile {
	return &Profile{
		Name:          "Prasanth Pradeep",
		Role:          "CSE Student | Web & AI Enthusiast",
		Email:         "prasanthpradeep@email.com",
		Username:      "prasanth",
		GitHubUser:    "PrasanthPradeep",
		LinkedInUser:  "prasanth1010000",
		InstagramUser: "prasanth__p_",
		About:         "I am a passionate and creative CSE student with a knack for building beautiful and functional web applications. I specialize in Web Development and AI, and I'm always eager to learn new things and take on challenging projects.",
		Skills: []SkillCategory{
			{Category: "Languages", Items: []string{"Python", "C++", "JavaScript", "TypeScript"}},
			{Category: "Web Dev", Items: []string{"React", "Node.js", "HTML/CSS", "Tailwind CSS"}},
			{Category: "Concepts", Items: []string{"DSA", "AI", "OOP"}},
		},
		Projects: []Project{
			{
				Name:        "PromptPilot",
				Description: "An AI-powered tool to help users craft better prompts.",
				Link:        "https://github.com/PrasanthPradeep/PromptPilot",
			},
			{
				Name:        "Project Prism",
				Description: "A web-based data visualization tool.",
				Link:        "https://github.com/PrasanthPradeep/ProjectPrism",
			},
			{
				Name:        "Who's Prashu?",
				Description: "My personal portfolio website.",
				Link:        "https://github.com/PrasanthPradeep/prasanthp",
			},
		},
		Location: "Kollam, Kerala, India",
		Status:   "Open to new opportunities",
		Quotes: []Quote{
			{Text: "Talk is cheap. Show me the code.", Author: "Linus Torvalds"},
			{Text: "The best way to get started is to quit talking and begin doing.", Author: "Walt Disney"},
			{Text: "Code is like humor. When you have to explain it, it's bad.", Author: "Cory House"},
		},
	}
}

// Home returns the absolute home directory of the profile owner.
func (p *Profile) Home() string {
	return "/home/" + p.Username
}

// Validate checks the fields the filesystem and the commands depend on.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	if p.Username == "" || strings.ContainsAny(p.Username, "/ \t") || p.Username == "." || p.Username == ".." {
		return fmt.Errorf("%w: username %q is not a valid directory name", ErrInvalidProfile, p.Username)
	}
	for i, proj := range p.Projects {
		if strings.TrimSpace(proj.Name) == "" {
			return fmt.Errorf("%w: project %d has no name", ErrInvalidProfile, i)
		}
		if strings.Contains(proj.Name, "/") {
			return fmt.Errorf("%w: project name %q contains '/'", ErrInvalidProfile, proj.Name)
		}
	}
	return nil
}

// Load reads a profile from a YAML file. Fields missing from the file keep
// their built-in values.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML profile data over the defaults and validates it.
func Parse(data []byte) (*Profile, error) {
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Save writes the profile as YAML.
func (p *Profile) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	data, err := p.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// Marshal encodes the profile as YAML.
func (p *Profile) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	return data, nil
}

// LoadOrDefault loads path when set and falls back to the built-in profile otherwise.
func LoadOrDefault(path string) (*Profile, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
