package generator

import "fmt"

const initialPromptFormat = `You are an expert in the Graphviz DOT language. A user will provide their first instruction to start a flowchart.
Your task is to create the initial DOT graph for this first step.

Rules:
1. Start the graph with 'digraph flowchart {' and 'rankdir="TB";'.
2. Create nodes for the first step described by the user.
3. If the user's text includes spaces, the node label MUST be in double quotes. Example: FirstStep [label="First Step"];.
4. Return ONLY the complete DOT code, ending with '}'.

User's first instruction: %q`

const modificationPromptFormat = `You are an expert in the Graphviz DOT language who is helping a user build a flowchart step-by-step.
You will be given the CURRENT DOT code and the user's NEXT instruction.
Your task is to modify the current DOT code to incorporate the new instruction.

Rules:
1. Analyze the current DOT code and the user's instruction.
2. Add or modify nodes and edges as requested.
3. Remember to use double quotes for any labels with spaces. Example: NewStep [label="New Step"];.
4. IMPORTANT: When connecting nodes, use a simple arrow '->'. Do NOT use the user's instruction as a label on the arrow. Only add a label if the user explicitly asks for one, such as for a decision path (e.g. 'label it Pass').
5. Return ONLY the complete, new, updated DOT code. Do not include explanations.

Current DOT code:
%s

User's next instruction: %q`

func initialPrompt(instruction string) string {
	return fmt.Sprintf(initialPromptFormat, instruction)
}

func modificationPrompt(current, instruction string) string {
	return fmt.Sprintf(modificationPromptFormat, current, instruction)
}
