package prompts

const (
	// SafetyInstruction は全てのプロンプトの末尾に必ず付与される安全制約です。
	SafetyInstruction = "\n\n**Safety Constraint:** The generated image must be strictly safe-for-work (SFW). All individuals must be depicted as fully and modestly clothed. All poses and interactions must be wholesome and platonic."

	bodyModificationsHeader = "\n\n**Subject Body Modifications:**"
	bodyModificationLine    = "\n- **For %s**: Reshape their body to match the following description: \"%s\". This instruction applies ONLY to the body shape."

	criticalInstructionsHeader = "\n\n**Critical Instructions:**"
	identityDirective          = "\n- **Absolute Identity Preservation:** You MUST preserve the exact face, identity, and hairstyle for each subject from their source photo. This is the highest priority. The body reshaping instructions above MUST NOT alter their facial features."
	clothingDirective          = "\n- **Clothing Preservation & Failsafe:** Preserve the clothing from the source photos. If a subject's clothing is not fully visible or is ambiguous, you MUST render them in simple, dark-colored casual wear (e.g., a black t-shirt and dark jeans). This is a strict rule to prevent inventing outfits that could alter the subject's identity."
	compositionDirective       = "\n- **Composition & Realism:** %s. The pose must be natural, with perfectly consistent lighting, shadows, and perspective between all subjects and the background."
	qualityDirective           = "\n- **Quality:** The final result must be %s"

	// BackgroundMandateA / BackgroundMandateB は背景画像がある場合にのみ付与されます。
	BackgroundMandateA = `### MANDATE #A: BACKGROUND & PHOTOREALISM
Integrate the subjects seamlessly into the provided background.
Match lighting direction, shadow sharpness, and color temperature.
Match grain, focus, and depth of field.
Apply consistent color grading.
The final output must look like a single photograph, indistinguishable of any edits.`

	BackgroundMandateB = `### MANDATE #B: SCALE & COMPOSITION
Characters must be proportional to objects in the background (doors, furniture, etc.).
Feet must rest naturally on a plausible surface.
Subject must be centered logically in frame.`

	// PhotorealismDirective は背景画像がない場合に MANDATE の代わりに付与されます。
	PhotorealismDirective = "\n- **PHOTOREALISM:** The image must be **hyper-photorealistic**, indistinguishable from a high-end commercial photograph."

	backgroundPlacementClause = " and place them in the background image."
)
