package vfs

import (
	"fmt"
	"strings"

	"termfolio/internal/logging"
	"termfolio/internal/profile"
)

// Names of the fixed entries under the home directory.
const (
	AboutFile   = "about.txt"
	SkillsFile  = "skills.txt"
	SocialFile  = "social.txt"
	ProjectsDir = "projects"
)

// Build derives the filesystem from profile data. It is deterministic: the
// same profile always yields the same paths and contents. Projects whose
// names map to the same file name overwrite each other in order, and the
// name is listed once at the position of its first occurrence.
func Build(p *profile.Profile) *Filesystem {
	timer := logging.StartTimer(logging.CategoryVFS, "vfs build")
	defer timer.Stop()

	home := p.Home()
	projectsPath := ChildPath(home, ProjectsDir)

	nodes := map[string]Node{
		"/":     {Kind: KindDir, Children: []string{"home"}},
		"/home": {Kind: KindDir, Children: []string{p.Username}},
		home: {Kind: KindDir, Children: []string{
			AboutFile, SkillsFile, SocialFile, ProjectsDir,
		}},
		ChildPath(home, AboutFile):  {Kind: KindFile, Content: p.About},
		ChildPath(home, SkillsFile): {Kind: KindFile, Content: SkillsText(p)},
		ChildPath(home, SocialFile): {Kind: KindFile, Content: SocialText(p)},
	}

	var listing []string
	for _, proj := range p.Projects {
		name := ProjectFileName(proj.Name)
		path := ChildPath(projectsPath, name)
		if _, seen := nodes[path]; seen {
			logging.VFSDebug("project %q overwrites %s", proj.Name, path)
		} else {
			listing = append(listing, name)
		}
		nodes[path] = Node{Kind: KindFile, Content: ProjectText(proj)}
	}
	nodes[projectsPath] = Node{Kind: KindDir, Children: listing}

	logging.VFS("built filesystem for %s: %d nodes", p.Username, len(nodes))
	return mustNew(nodes, home)
}

// mustNew is New for trees built from code; a broken tree is a bug in Build.
func mustNew(nodes map[string]Node, home string) *Filesystem {
	f, err := New(nodes, home)
	if err != nil {
		panic("vfs: " + err.Error())
	}
	return f
}

// ProjectFileName lower-cases a project name, turns spaces into hyphens and
// appends ".md".
func ProjectFileName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-") + ".md"
}

// ProjectText is the markdown content of a project file.
func ProjectText(proj profile.Project) string {
	return fmt.Sprintf("# %s\n\n%s\n\nLink: %s", proj.Name, proj.Description, proj.Link)
}

// SkillsText renders skill categories as a bulleted list per category.
func SkillsText(p *profile.Profile) string {
	sections := make([]string, 0, len(p.Skills))
	for _, cat := range p.Skills {
		var sb strings.Builder
		sb.WriteString(cat.Category)
		sb.WriteString(":")
		for _, item := range cat.Items {
			sb.WriteString("\n  - ")
			sb.WriteString(item)
		}
		sections = append(sections, sb.String())
	}
	return strings.Join(sections, "\n\n")
}

// SocialText lists the profile's social links.
func SocialText(p *profile.Profile) string {
	return strings.Join([]string{
		"LinkedIn: " + LinkedInURL(p),
		"GitHub: " + GitHubURL(p),
		"Instagram: " + InstagramURL(p),
	}, "\n")
}

func LinkedInURL(p *profile.Profile) string  { return "https://linkedin.com/in/" + p.LinkedInUser }
func GitHubURL(p *profile.Profile) string    { return "https://github.com/" + p.GitHubUser }
func InstagramURL(p *profile.Profile) string { return "https://www.instagram.com/" + p.InstagramUser }
