package catalog

import "github.com/shouni/go-fusion-kit/pkg/domain"

// DefaultPersonaID はデフォルトペルソナの ID です。
const DefaultPersonaID = "default"

// DefaultPersonaDescription はデフォルトペルソナの説明文です。プロンプトには注入されません。
const DefaultPersonaDescription = "Use the body characteristics as depicted in the subject image without modifications."

var builtinPersonas = []domain.Persona{
	{ID: DefaultPersonaID, Name: "Default", Description: DefaultPersonaDescription, IsDefault: true},
	{ID: "female-triangle-pear", Name: "Triangle (Pear)", Group: domain.GroupFemale,
		Description: "Narrow shoulders, small bust, wide hips and thighs, fuller lower body."},
	{ID: "female-inverted-triangle", Name: "Inverted Triangle", Group: domain.GroupFemale,
		Description: "Broad shoulders, fuller chest, narrow waist, slim hips and legs."},
	{ID: "female-rectangle", Name: "Rectangle", Group: domain.GroupFemale,
		Description: "Straight torso, even proportions, minimal waist curve, balanced bust and hips."},
	{ID: "female-oval-apple", Name: "Oval (Apple)", Group: domain.GroupFemale,
		Description: "Full midsection, soft waist, narrower hips, rounded body shape."},
	{ID: "female-hourglass", Name: "Hourglass", Group: domain.GroupFemale,
		Description: "Narrow waist, balanced bust and hips, curvy proportions."},
	{ID: "female-triangle-alternate", Name: "Triangle (alternate)", Group: domain.GroupFemale,
		Description: "Small upper body, large hips and thighs, strong lower frame."},
	{ID: "female-voluptuous-hourglass", Name: "Voluptuous (Thick Hourglass)", Group: domain.GroupFemale,
		Description: "Large chest and hips, thick thighs, soft belly, strong curves, athletic-to-plus build."},
	{ID: "male-ectomorph", Name: "Ectomorph", Group: domain.GroupMale,
		Description: "Lean and slender, long limbs, narrow shoulders, low muscle mass."},
	{ID: "male-mesomorph", Name: "Mesomorph", Group: domain.GroupMale,
		Description: "Athletic build, broad shoulders, narrow waist, defined muscles."},
	{ID: "male-endomorph", Name: "Endomorph", Group: domain.GroupMale,
		Description: "Rounder body, wider waist and hips, soft muscle definition."},
}

var builtinScenarios = []domain.Scenario{
	{
		ID: "group-photo", Kind: domain.KindGroupPhoto, Title: "Classic Group Photo",
		Description: "A standard pose where everyone is looking at the camera, smiling.",
		PoseClause:  "in a classic group photo layout, smiling and looking at the camera",
		Composition: "Arrange all subjects in a standard group photo layout",
	},
	{
		ID: "hug-pose", Kind: domain.KindHug, Title: "Reunion Hug",
		Description: "An emotional scene of friends reuniting with a warm hug.",
		PoseClause:  "in a warm, emotional group hug, as if reuniting after a long time",
		Composition: "This should be a close up photo. Their expressions should be joyous and genuine",
	},
	{
		ID: "intimate-scene", Kind: domain.KindIntimate, Title: "Quiet Moment",
		Description: "A close, personal moment capturing a deep, friendly connection.",
		PoseClause:  "sitting closely together, sharing a quiet, friendly moment. They are looking at each other with warm, platonic affection",
		Composition: "Arrange the subjects close together in a comfortable, relaxed way. Their interaction should feel genuine, not posed for the camera",
	},
	{
		ID: "candid-moment", Kind: domain.KindCandid, Title: "Candid Moment",
		Description: "A natural, unposed interaction, as if caught in the moment.",
		PoseClause:  "interacting naturally with each other, as if caught in a candid moment",
		Composition: "Subjects should be laughing or talking, not looking at the camera",
	},
	{
		ID: "nightclub-photo", Kind: domain.KindNightclub, Title: "Atmospheric Photo",
		Description:       "A spontaneous photo taken in a dark, atmospheric setting.",
		PoseClause:        "in a spontaneous, atmospheric photo taken without a flash",
		Composition:       "The lighting on the subjects must be dim and moody, consistent with the environment. Crucially, they should appear illuminated *only* by the ambient light of the dark setting, avoiding any bright, artificial lighting directly on them.",
		WithBackground:    " The background lighting should match this dim, moody, and atmospheric style.",
		WithoutBackground: " The setting should be a dark, atmospheric place like a lounge or cafe at night.",
	},
	{
		ID: "lying-down", Kind: domain.KindLyingDown, Title: "Cloud Gazing",
		Description:       "A cozy, top-down view of friends lying on a blanket and looking up.",
		PoseClause:        "lying on their backs on a large blanket, side-by-side and looking up, as if watching clouds. The view is from a top-down perspective",
		Composition:       "The camera angle is directly from above. They should be close together in a comfortable state.",
		WithBackground:    " Crucially, you MUST adjust the background's perspective to a matching top-down view.",
		WithoutBackground: " The setting is a cozy, dimly lit room.",
	},
	{
		ID: "kissing-booth", Kind: domain.KindKissingBooth, Title: "Kissing Booth",
		Description:       "A close-up, high-quality studio shot of a playful, affectionate moment. (Requires 2 subjects)",
		PoseClause:        "in a playful and affectionate moment, with one person giving the other a gentle kiss on the lips.",
		Composition:       "This is a professional studio shot. Their faces must take up about 75% of the frame. Ensure sharp details and beautiful lighting.",
		WithBackground:    " Maintain high-quality studio lighting on the subjects.",
		WithoutBackground: " The background should be simple, dark, and heavily out-of-focus to ensure all attention remains on the couple.",
		ForcedQuality:     domain.QualityUltraHigh,
		RequiredSubjects:  2,
	},
	{
		ID: "photo-booth", Kind: domain.KindPhotoBooth, Title: "Photo Booth",
		Description:       "A 3x3 grid of photo strips with different fun poses and expressions.",
		PoseClause:        "in a series of fun, studio-style poses and expressions",
		Composition:       "The final image must be a 3x3 grid of photo strips. The overall image should have a slight blur and a consistent light source, like a camera flash in a dark room.",
		WithBackground:    " This background should be visible behind the subjects in each photo strip.",
		WithoutBackground: " The background behind the subjects in each photo strip must be a simple white curtain.",
	},
	{
		ID: "cinematic-portrait", Kind: domain.KindCinematicPortrait, Title: "Cinematic Portrait",
		Description:  "A dramatic, high-contrast portrait with a bold red background.",
		PoseClause:   "in a dramatic, high-contrast vertical portrait with stark cinematic lighting",
		Composition:  "Subjects should wear dark, simple wardrobe. Capture them from a slightly low, upward-facing angle to dramatize their features, evoking quiet dominance and sculptural elegance. The background must be a deep, saturated crimson red.",
		NoBackground: true,
	},
	{
		ID: "professional-bw", Kind: domain.KindProfessionalBW, Title: "Professional B&W",
		Description:   "A striking, top-angle black and white headshot with a dark background.",
		PoseClause:    "in a formal, top-angle, close-up black and white portrait",
		Composition:   "The style must be a 35mm lens look. Focus on their heads, upper chests, and shoulders. Each person must have a proud expression and face forward, not interacting. The background must be a deep black shadow.",
		ForcedQuality: domain.QualityUltraHigh,
		NoBackground:  true,
	},
}
