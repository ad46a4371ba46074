// Package catalog holds the static clinical service catalog. The catalog is
// read-only reference data loaded at process start; booking resolves a
// service ID into the denormalized name stored on the appointment record.
package catalog

// Step is one stage of a clinical procedure.
type Step struct {
	Title       string `json:"title"       doc:"Step name"        example:"Examination"`
	Description string `json:"description" doc:"Step description" example:"Thorough visual and X-ray inspection of teeth and gums."`
}

// Service describes one entry in the clinical service catalog.
type Service struct {
	ID          int      `json:"id"          doc:"Catalog identifier"            example:"1"`
	Slug        string   `json:"slug"        doc:"URL-friendly identifier"       example:"general-care"`
	Title       string   `json:"title"       doc:"Display title"                 example:"General Dental Care"`
	Description string   `json:"description" doc:"Service description"`
	Candidates  []string `json:"candidates"  doc:"Conditions this service suits"`
	Steps       []Step   `json:"steps"       doc:"Procedure stages"`
	Benefits    []string `json:"benefits"    doc:"Patient benefits"`
}

var services = []Service{
	{
		ID:          1,
		Slug:        "general-care",
		Title:       "General Dental Care",
		Description: "Comprehensive oral health maintenance including exams, cleanings, and preventative treatments to keep your smile healthy for life.",
		Candidates:  []string{"Routine Checkups", "Cavity Prevention", "Gum Health", "Bad Breath Issues"},
		Steps: []Step{
			{Title: "Examination", Description: "Thorough visual and X-ray inspection of teeth and gums."},
			{Title: "Cleaning", Description: "Removal of plaque and tartar buildup."},
			{Title: "Treatment Plan", Description: "Personalized advice for ongoing oral hygiene."},
		},
		Benefits: []string{"Prevents Tooth Decay", "Early Detection", "Fresher Breath", "Saves Money Long-term"},
	},
	{
		ID:          2,
		Slug:        "smile-design",
		Title:       "Cosmetic Smile Design",
		Description: "Transform your smile with veneers, whitening, and aesthetic contouring designed to boost your confidence.",
		Candidates:  []string{"Discolored Teeth", "Chipped Teeth", "Gaps", "Misaligned Smiles"},
		Steps: []Step{
			{Title: "Consultation", Description: "Discussing your aesthetic goals and options."},
			{Title: "Mockup", Description: "Digital or physical preview of your new smile."},
			{Title: "Preparation", Description: "Preparing teeth for veneers or treatment."},
			{Title: "Finalization", Description: "Bonding the final restorations."},
		},
		Benefits: []string{"Boosted Confidence", "Youthful Appearance", "Permanent Results", "Stain Resistance"},
	},
	{
		ID:          3,
		Slug:        "implant-dentistry",
		Title:       "Implant Dentistry",
		Description: "Permanent, natural-looking replacements for missing teeth that restore full function and aesthetics.",
		Candidates:  []string{"Missing Teeth", "Loose Dentures", "Bone Loss", "Difficulty Chewing"},
		Steps: []Step{
			{Title: "Assessment", Description: "CT scans to evaluate bone density."},
			{Title: "Placement", Description: "Surgical placement of the titanium post."},
			{Title: "Healing", Description: "Osseointegration period for stability."},
			{Title: "Restoration", Description: "Attaching the custom crown."},
		},
		Benefits: []string{"Natural Look & Feel", "Prevents Bone Loss", "No Dietary Restrictions", "Lifetime Durability"},
	},
	{
		ID:          4,
		Slug:        "Orthodontics",
		Title:       "Orthodontics",
		Description: "Straighten your teeth and correct bite issues with modern braces or clear aligners for a healthier smile.",
		Candidates:  []string{"Crooked Teeth", "Overbite/Underbite", "Crowding", "Jaw Pain"},
		Steps: []Step{
			{Title: "Records", Description: "Photos, X-rays, and digital scans."},
			{Title: "Bonding/Fitting", Description: "Applying braces or delivering aligners."},
			{Title: "Adjustments", Description: "Regular visits to progress movement."},
			{Title: "Retention", Description: "Retainers to maintain the new position."},
		},
		Benefits: []string{"Easier Cleaning", "Better Digestion", "Reduced Jaw Strain", "Aesthetic Harmony"},
	},
}

// All returns every catalog entry.
func All() []Service {
	return services
}

// ByID returns the service with the given ID.
func ByID(id int) (Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// BySlug returns the service with the given slug.
func BySlug(slug string) (Service, bool) {
	for _, s := range services {
		if s.Slug == slug {
			return s, true
		}
	}
	return Service{}, false
}
