package genai

import "fmt"

// generationPrompt asks for a React Flow compatible graph with detailed
// node descriptions. The model must return only a JSON object.
func generationPrompt(description string) string {
	return fmt.Sprintf(`You are a senior software architect designing a tech stack diagram for a web application.
Based on the project description below, generate a tech stack graph.

Project description: %s

Return ONLY a valid JSON object with this exact structure compatible with React Flow:
{
  "nodes": [
    {
      "id": "node_unique_string_id",
      "type": "techNode",
      "position": { "x": 100, "y": 200 },
      "data": {
        "label": "Component Name",
        "type": "frontend|backend|database|api|deployment|custom",
        "details": "Detailed description of this component"
      }
    }
  ],
  "edges": [
    {
      "id": "edge_unique_string_id",
      "source": "source_node_id",
      "target": "target_node_id",
      "type": "default",
      "markerEnd": { "type": "arrowclosed" }
    }
  ]
}

Instructions for generation:
1. Include logical components for the stack: frontend frameworks, backend frameworks, databases, important APIs and services, deployment targets.
2. Assign a relevant categorical type within the data object.
3. Position nodes logically using position.x and position.y, within 0-1000 canvas units.
4. Create edges between related components (frontend to backend, backend to database, and so on). Ensure source and target use the correct string IDs of the nodes.
5. Use descriptive, unique string IDs for both nodes and edges.
6. IMPORTANT for data.details: for EACH node, provide key technical specifications relevant to this project, focusing on versions, specific configurations, or sub-components. Avoid generic descriptions. If a specific version or configuration is not implied by the description, provide a typical or latest stable version as a sensible default.
7. Ensure the final output is ONLY the JSON object, with no surrounding text or explanations.`, description)
}

// explanationPrompt asks for a textual explanation of a generated graph in
// the context of the user's original request.
func explanationPrompt(graphJSON, originalPrompt string) string {
	return fmt.Sprintf(`You are a helpful AI assistant explaining a generated tech stack diagram.
The diagram was generated based on the following user request:
"%s"

Here is the generated tech stack graph data (React Flow JSON format):
%s

Explain the choices made for the components in this tech stack in the context of the original user request.
Describe why each component (node) might have been chosen and how they connect (edges) to fulfill the user's goal.
Focus on the relationships and the overall architecture suggested by the graph.
Keep the explanation concise and easy to understand.
Do not output JSON, only the textual explanation.`, originalPrompt, graphJSON)
}

// scriptPrompt asks for a raw bash script that scaffolds the project
// structure for a graph. Output must start with a shebang and contain no
// markdown fences.
func scriptPrompt(graphJSON, userContext string) string {
	if userContext == "" {
		userContext = "No specific user requirements provided."
	}
	return fmt.Sprintf(`You are an expert system administrator and software developer tasked with generating a Bash script.
This script will scaffold a basic project structure on the user's local machine based on a provided tech stack graph and user requirements.

Input tech stack (React Flow JSON format):
%s

User requirements and context:
"%s"

Your task: generate ONLY a valid Bash script (starting with #!/bin/bash) that performs the following actions:
1. Creates the necessary directory structure based on the components in the tech stack graph, using logical names derived from the node labels and types.
2. Creates essential placeholder files within those directories using the touch command, choosing appropriate files for each technology.
3. Uses mkdir -p to create directories recursively and avoid errors if they already exist.
4. Uses proper single quoting for ALL file and directory paths in the mkdir and touch commands to handle spaces or special characters safely. This is critical.
5. Adds basic, common content to .gitignore (node_modules, venv, .env files except .env.example, __pycache__).
6. Adds a basic README.md structure including the user requirements and a placeholder for setup instructions, written with a heredoc.
7. Includes set -e at the beginning of the script so it exits on error.
8. Ends with an echo message indicating success.

Output format: return ONLY the raw Bash script content, starting precisely with #!/bin/bash and ending with the final echo command. Do NOT include any explanations, introductions, markdown code fences, or any other text outside the script itself.`, graphJSON, userContext)
}
