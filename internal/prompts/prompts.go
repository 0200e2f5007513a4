// Package prompts builds the prompt templates for the language-model
// orchestrator and the Cypher query generator. Everything here is a
// string template over the graph schema and the registered tool names;
// no state, no I/O.
package prompts

import (
	"fmt"
	"strings"
)

// ToolNames holds the names of the tools the orchestrator prompt
// references. Names are looked up from the live tool registry so the
// prompt stays correct when tools are renamed.
type ToolNames struct {
	QueryGraph      string
	ReadFile        string
	AnalyzeDocument string
	SemanticSearch  string
	CreateFile      string
	EditFile        string
	ShellCommand    string
	ListDirectory   string
}

// DefaultToolNames returns the canonical tool names.
func DefaultToolNames() ToolNames {
	return ToolNames{
		QueryGraph:      "query_codebase_knowledge_graph",
		ReadFile:        "read_file_content",
		AnalyzeDocument: "analyze_document",
		SemanticSearch:  "semantic_code_search",
		CreateFile:      "create_new_file",
		EditFile:        "replace_code_surgically",
		ShellCommand:    "execute_shell_command",
		ListDirectory:   "list_directory",
	}
}

// Override replaces any tool name for which the registry uses a
// non-canonical name. Empty fields keep the current value.
func (t ToolNames) Override(o ToolNames) ToolNames {
	merge := func(cur, next string) string {
		if next != "" {
			return next
		}
		return cur
	}
	return ToolNames{
		QueryGraph:      merge(t.QueryGraph, o.QueryGraph),
		ReadFile:        merge(t.ReadFile, o.ReadFile),
		AnalyzeDocument: merge(t.AnalyzeDocument, o.AnalyzeDocument),
		SemanticSearch:  merge(t.SemanticSearch, o.SemanticSearch),
		CreateFile:      merge(t.CreateFile, o.CreateFile),
		EditFile:        merge(t.EditFile, o.EditFile),
		ShellCommand:    merge(t.ShellCommand, o.ShellCommand),
		ListDirectory:   merge(t.ListDirectory, o.ListDirectory),
	}
}

// GraphSchemaDefinition describes the nodes and relationships of the
// code knowledge graph the Cypher generator targets.
const GraphSchemaDefinition = `**Nodes:**
- Project {name}
- Package {name, qualified_name, path}
- File {name, path, extension}
- Module {name, qualified_name, path}
- Class {name, qualified_name, decorators}
- Function {name, qualified_name, decorators}
- Method {name, qualified_name, decorators}
- Folder {path}

**Relationships:**
- (Project)-[:CONTAINS_PACKAGE|CONTAINS_FILE|CONTAINS_FOLDER]->(...)
- (Package)-[:CONTAINS_MODULE|CONTAINS_FILE]->(...)
- (Module)-[:DEFINES]->(Class|Function)
- (Class)-[:DEFINES_METHOD]->(Method)
- (Function|Method)-[:CALLS]->(Function|Method)
- (Module)-[:IMPORTS]->(Module)`

// CypherQueryRules are the generation rules shared by every Cypher
// prompt variant.
const CypherQueryRules = `**2. Critical Cypher Query Rules**

- **ALWAYS Return Specific Properties with Aliases**: Do NOT return whole nodes (e.g., 'RETURN n'). You MUST return specific properties with clear aliases (e.g., 'RETURN n.name AS name').
- **Use 'STARTS WITH' for Paths**: When matching paths, always use 'STARTS WITH' for robustness. Do not use '='.
- **Use 'toLower()' for Searches**: For case-insensitive searching on string properties, use 'toLower()'.
- **Querying Lists**: To check if a list property (like 'decorators') contains an item, use the 'ANY' or 'IN' clause.
- **ALWAYS ADD LIMIT**: Add 'LIMIT 50' to queries that list items. When asked "how many" or "count", return ONLY the count.`

// GraphSchemaAndRules combines the schema definition with the query
// rules, forming the shared preamble of the Cypher prompts.
func GraphSchemaAndRules() string {
	return fmt.Sprintf(`You are an expert AI assistant for analyzing codebases using a **hybrid retrieval system**: a knowledge graph for structural queries and a semantic code search engine for intent-based discovery.

**1. Graph Schema Definition**
The database contains information about a codebase, structured with the following nodes and relationships.

%s

%s
`, GraphSchemaDefinition, CypherQueryRules)
}

// CypherSystemPrompt builds the system prompt for the natural-language
// to Cypher translator.
func CypherSystemPrompt() string {
	return fmt.Sprintf(`You are an expert translator that converts natural language questions about code structure into precise Cypher queries.

%s

**3. Output Format**
Provide only the Cypher query.
`, GraphSchemaAndRules())
}

// OrchestratorPrompt builds the system prompt for the RAG orchestrator,
// wiring in the live tool names.
func OrchestratorPrompt(t ToolNames) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are an expert AI assistant for analyzing codebases. Your answers are based EXCLUSIVELY on information retrieved using your tools.

**TOOL SELECTION HIERARCHY (FOLLOW IN ORDER)**

**TIER 1: SEMANTIC & STRUCTURAL ANALYSIS (USE FIRST)**

1. ALWAYS START WITH %s - find code by intent and meaning.
2. THEN USE %s - explore structural relationships (call chains, inheritance, imports).

**TIER 2: EXAMINATION (USE AFTER DISCOVERY)**

3. FINALLY USE %s - read actual source code, only after discovery identified specific files.

**TIER 3: FALLBACK (ONLY WHEN TIER 1 FAILS)**

4. LAST RESORT: %s - see directory structure, only when the user explicitly asks for directory contents.
`,
		t.SemanticSearch, t.QueryGraph, t.ReadFile, t.ListDirectory)

	fmt.Fprintf(&b, `
**CRITICAL RULES**

1. TOOL-ONLY ANSWERS: only use information from tools. No external knowledge.
2. NATURAL LANGUAGE QUERIES: when using %s, use natural language. NEVER write Cypher directly.
3. HONESTY: if tools fail or return no results, state it clearly. Do not invent answers.
4. CHOOSE THE RIGHT TOOL FOR THE FILE TYPE: source code goes to %s, documents (PDFs, images) go to %s.
5. FILE CHANGES: create files with %s, edit existing code with %s, run commands with %s.

**Final Output**
- Analyze and explain retrieved content.
- Cite sources (file paths, qualified names).
- Report errors gracefully.
`,
		t.QueryGraph, t.ReadFile, t.AnalyzeDocument, t.CreateFile, t.EditFile, t.ShellCommand)

	return b.String()
}

// OptimizationPrompt builds the canned analysis prompt for a language.
func OptimizationPrompt(language string) string {
	return fmt.Sprintf(`I want you to analyze my %[1]s codebase and propose specific optimizations based on best practices.

Please:
1. Use your code retrieval and graph querying tools to understand the codebase structure
2. Read relevant source files to identify optimization opportunities
3. Reference established patterns and best practices for %[1]s
4. Propose specific, actionable optimizations with file references
5. IMPORTANT: Do not make any changes yet - just propose them and wait for approval
6. After approval, use your file editing tools to implement the changes

Start by analyzing the codebase structure and identifying the main areas that could benefit from optimization.
Remember: Propose changes first, wait for my approval, then implement.
`, language)
}
