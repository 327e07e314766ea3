package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"termfolio/internal/profile"
	"termfolio/internal/vfs"
)

// CommandInfo describes one entry of the help listing.
type CommandInfo struct {
	Usage       string
	Description string
}

// Commands is the help listing in display order.
var Commands = []CommandInfo{
	{"about", "Displays my professional summary."},
	{"social", "Shows my social media links."},
	{"skills", "Lists my technical skills."},
	{"projects", "Shows my recent projects."},
	{"neofetch", "Display system information."},
	{"ls [path]", "List directory contents."},
	{"cd [dir]", "Change directory."},
	{"cat [file]", "Display file content."},
	{"ai", "Start an interactive chat session with the AI."},
	{"ai interview", "Start a mock interview with the AI."},
	{"sudo hire", "Hire me!"},
	{"clear", "Clears the terminal screen."},
	{"history", "Shows command history."},
}

func (in *Interpreter) help(resp *Response) {
	lines := make([]string, 0, len(Commands))
	for _, c := range Commands {
		lines = append(lines, fmt.Sprintf("  %-13s - %s", c.Usage, c.Description))
	}
	resp.add(Block{
		Kind:  BlockOutput,
		Title: "Available Commands:",
		Text:  strings.Join(lines, "\n"),
	})
}

// about renders the same text as about.txt.
func (in *Interpreter) about(resp *Response) {
	resp.add(Block{Kind: BlockOutput, Title: "About Me:", Text: in.profile.About})
}

func (in *Interpreter) skills(resp *Response) {
	lines := make([]string, 0, len(in.profile.Skills))
	for _, sc := range in.profile.Skills {
		lines = append(lines, sc.Category+": "+strings.Join(sc.Items, ", "))
	}
	resp.add(Block{Kind: BlockOutput, Title: "Technical Skills:", Text: strings.Join(lines, "\n")})
}

func (in *Interpreter) social(resp *Response) {
	p := in.profile
	text := strings.Join([]string{
		"LinkedIn: " + trimScheme(vfs.LinkedInURL(p)),
		"GitHub: " + trimScheme(vfs.GitHubURL(p)),
		"Instagram: " + trimScheme(vfs.InstagramURL(p)),
	}, "\n")
	resp.add(Block{Kind: BlockOutput, Title: "Connect with Me:", Text: text})
}

func (in *Interpreter) projects(resp *Response) {
	parts := make([]string, 0, len(in.profile.Projects))
	for _, proj := range in.profile.Projects {
		parts = append(parts, fmt.Sprintf("%s\n  %s\n  %s", proj.Name, proj.Description, trimScheme(proj.Link)))
	}
	resp.add(Block{Kind: BlockOutput, Title: "Projects:", Text: strings.Join(parts, "\n\n")})
}

// history lists the lines submitted before this one, oldest first.
func (in *Interpreter) history(resp *Response, previous []string) {
	if len(previous) == 0 {
		return
	}
	lines := make([]string, 0, len(previous))
	for i := len(previous) - 1; i >= 0; i-- {
		lines = append(lines, strconv.Itoa(len(lines)+1)+": "+previous[i])
	}
	resp.output(ToneDefault, strings.Join(lines, "\n"))
}

var neofetchArt = []string{
	"  ██████╗  ██████╗ ",
	"  ██╔══██╗ ██╔══██╗",
	"  ██████╔╝ ██████╔╝",
	"  ██╔═══╝  ██╔═══╝ ",
	"  ██║      ██║     ",
	"  ╚═╝      ╚═╝     ",
}

const neofetchArtWidth = 21

func (in *Interpreter) neofetch(resp *Response) {
	p := in.profile
	info := []string{
		"Name: " + p.Name,
		"Role: " + p.Role,
		"GitHub: " + trimScheme(vfs.GitHubURL(p)),
		"Contact: " + p.Email,
		"Location: " + p.Location,
		"Status: " + p.Status,
	}
	if q, ok := in.pickQuote(); ok {
		info = append(info, fmt.Sprintf("\"%s\" – %s", q.Text, q.Author))
	}

	rows := max(len(neofetchArt), len(info))
	lines := make([]string, 0, rows)
	for i := 0; i < rows; i++ {
		var art, text string
		if i < len(neofetchArt) {
			art = neofetchArt[i]
		}
		if i < len(info) {
			text = info[i]
		}
		pad := neofetchArtWidth - len([]rune(art))
		lines = append(lines, strings.TrimRight(art+strings.Repeat(" ", max(pad, 1))+text, " "))
	}
	resp.output(ToneDefault, strings.Join(lines, "\n"))
}

func (in *Interpreter) pickQuote() (profile.Quote, bool) {
	quotes := in.profile.Quotes
	if len(quotes) == 0 {
		return profile.Quote{}, false
	}
	in.pickMu.Lock()
	i := in.picker.IntN(len(quotes))
	in.pickMu.Unlock()
	return quotes[i], true
}

func trimScheme(link string) string {
	return strings.TrimPrefix(strings.TrimPrefix(link, "https://"), "http://")
}
