// Package prompt assembles Markdown instructions for agentic AI builders
// from a tech stack graph. The output is meant to be pasted into an
// IDE-embedded coding agent, so it lists the stack, the component
// relationships, and the user's goals as explicit sections.
package prompt

import (
	"fmt"
	"strings"

	"github.com/stackcanvas/stackcanvas/pkg/flow"
)

// Fallback lines for empty sections.
const (
	noComponents    = "- No specific components defined."
	noRelationships = "- No specific relationships defined."
	noRequirements  = "No specific user requirements provided."
)

// Build generates a Markdown builder prompt from the graph and the user's
// free-form context. Nodes become the tech stack list, edges become the
// architecture overview. The function never fails: missing labels fall back
// to node IDs and empty sections get placeholder lines.
func Build(g flow.Graph, userContext string) string {
	labels := make(map[string]string, len(g.Nodes))
	for i := range g.Nodes {
		labels[g.Nodes[i].ID] = g.Nodes[i].Label()
	}

	var b strings.Builder
	b.WriteString("# Tech Stack Builder Instructions\n\n")
	b.WriteString("You are a powerful, agentic AI developer working inside an IDE environment capable of file system operations and code generation.\n\n")
	b.WriteString("You are tasked with setting up a complete project based on the following tech stack, architecture, file structure guidelines, and user goals. Your output should be primarily the necessary code and file structure modifications.\n\n")

	b.WriteString("## Project Tech Stack\n\n")
	b.WriteString("The core components for this project are:\n")
	b.WriteString(stackList(g))
	b.WriteString("\n\n")

	b.WriteString("## Architecture Overview\n\n")
	b.WriteString("The components should interact as follows:\n")
	b.WriteString(edgeList(g, labels))
	b.WriteString("\n\n")

	b.WriteString("## File Structure Overview\n\n")
	b.WriteString("Generate a project structure that logically organizes the components listed above. Follow common conventions for the specified technologies, and refine the structure based on the components and their relationships.\n\n")

	b.WriteString("## User Requirements and Goals\n\n")
	b.WriteString("The primary goals and features requested by the user are:\n")
	b.WriteString(formatContext(userContext))
	b.WriteString("\n\n")

	b.WriteString(missionSection)

	return strings.TrimSpace(b.String())
}

// stackList renders one bullet per node as "- Label: Details".
func stackList(g flow.Graph) string {
	if len(g.Nodes) == 0 {
		return noComponents
	}
	items := make([]string, 0, len(g.Nodes))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		details := n.Details()
		if details == "" {
			details = "No details provided"
		}
		items = append(items, fmt.Sprintf("- %s: %s", n.Label(), details))
	}
	return strings.Join(items, "\n")
}

// edgeList renders one bullet per edge as "- Source -> Target" using node
// labels, falling back to raw IDs for dangling endpoints.
func edgeList(g flow.Graph, labels map[string]string) string {
	items := make([]string, 0, len(g.Edges))
	for _, e := range g.Edges {
		if e.Source == "" || e.Target == "" {
			continue
		}
		src, ok := labels[e.Source]
		if !ok {
			src = e.Source
		}
		dst, ok := labels[e.Target]
		if !ok {
			dst = e.Target
		}
		items = append(items, fmt.Sprintf("- %s -> %s", src, dst))
	}
	if len(items) == 0 {
		return noRelationships
	}
	return strings.Join(items, "\n")
}

// formatContext normalizes the user's free-form context into a bullet list.
// Multi-line or already-bulleted input is re-bulleted line by line; a single
// sentence gets one bullet; empty input gets the placeholder.
func formatContext(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return noRequirements
	}
	if strings.Contains(s, "\n") || strings.Contains(s, "- ") || strings.Contains(s, "* ") {
		var lines []string
		for _, line := range strings.Split(s, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimPrefix(line, "- ")
			line = strings.TrimPrefix(line, "* ")
			if line == "" {
				continue
			}
			lines = append(lines, "- "+line)
		}
		return strings.Join(lines, "\n")
	}
	return "- " + s
}

const missionSection = `## Mission for AI

Execute the following steps to build the project:

1. **Create Project Structure:** Establish the main directories and subdirectories based on the tech stack (referencing the File Structure Overview).
2. **Generate Starter Files:** Create essential configuration files and basic entry point files for each service or component.
3. **Implement Boilerplate Code:** Add initial, functional code for basic setup such as server initialization, database connection setup, and a simple API endpoint.
4. **Establish Connections:** Implement basic communication patterns based on the Architecture Overview, such as a sample API call from the frontend to the backend.
5. **Add Documentation:** Generate a README.md outlining the project structure, setup instructions, and how to run each component. Include a .gitignore file.

**Critical Instructions:**
- Prioritize generating runnable, clean, and modular code.
- Assume the target environment has the necessary tools installed.
- Use the details provided in the "Project Tech Stack" section when generating configurations and code.
- If specific details are missing, make reasonable assumptions based on current stable versions of the given technologies.
- Minimize explanatory text in your response; focus on the code and file structure output.
- Ensure authentication and authorization flows are considered if mentioned in the requirements.`
