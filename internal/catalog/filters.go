package catalog

import "github.com/doeshing/organize-desk/internal/domain"

func timeSpanProperties() []domain.Property {
	return []domain.Property{
		{Name: "days", Label: "Days", Kind: domain.PropertyNumber, Description: "Number of days"},
		{Name: "hours", Label: "Hours", Kind: domain.PropertyNumber, Description: "Number of hours"},
		{Name: "minutes", Label: "Minutes", Kind: domain.PropertyNumber, Description: "Number of minutes"},
		{Name: "seconds", Label: "Seconds", Kind: domain.PropertyNumber, Description: "Number of seconds"},
		{
			Name:    "mode",
			Label:   "Mode",
			Kind:    domain.PropertySelect,
			Default: "older",
			Options: []domain.Option{
				{Value: "older", Label: "Older than"},
				{Value: "newer", Label: "Newer than"},
			},
		},
	}
}

var filterDefinitions = []domain.Definition{
	{
		Name:          "created",
		Label:         "Created Date",
		Description:   "Filter by file/folder creation date",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties:    timeSpanProperties(),
	},
	{
		Name:          "date_added",
		Label:         "Date Added (macOS)",
		Description:   "Filter by date the file was added to a folder (macOS only)",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties:    timeSpanProperties(),
	},
	{
		Name:          "date_lastused",
		Label:         "Date Last Used (macOS)",
		Description:   "Filter by last used date (macOS only)",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties:    timeSpanProperties(),
	},
	{
		Name:          "duplicate",
		Label:         "Duplicate",
		Description:   "Match duplicate files",
		SupportsFiles: true,
		Properties: []domain.Property{
			{
				Name:    "detect_original_by",
				Label:   "Detect Original By",
				Kind:    domain.PropertySelect,
				Default: "first_seen",
				Options: []domain.Option{
					{Value: "first_seen", Label: "First Seen"},
					{Value: "name", Label: "Name"},
					{Value: "created", Label: "Created Date"},
					{Value: "lastmodified", Label: "Last Modified"},
				},
			},
		},
	},
	{
		Name:          "empty",
		Label:         "Empty",
		Description:   "Match empty files or folders",
		SupportsFiles: true,
		SupportsDirs:  true,
	},
	{
		Name:          "exif",
		Label:         "EXIF Data",
		Description:   "Filter by EXIF metadata of images",
		SupportsFiles: true,
		Properties: []domain.Property{
			{
				Name:        "tags",
				Label:       "Required Tags",
				Kind:        domain.PropertyString,
				Placeholder: "e.g., image.model, gps.gpsdate",
				Description: "EXIF tag to require or filter by. Leave empty to match any file with EXIF data.",
			},
		},
	},
	{
		Name:          "extension",
		Label:         "Extension",
		Description:   "Filter by file extension",
		SupportsFiles: true,
		Properties: []domain.Property{
			{
				Name:        "extensions",
				Label:       "Extensions",
				Kind:        domain.PropertyStringSet,
				Placeholder: "e.g., pdf, jpg, png",
				Description: "File extensions to match (without dot). Leave empty to match all extensions.",
			},
		},
	},
	{
		Name:          "filecontent",
		Label:         "File Content",
		Description:   "Filter by text content of files (PDF, DOCX, etc.)",
		SupportsFiles: true,
		Properties: []domain.Property{
			{
				Name:        "pattern",
				Label:       "Pattern",
				Kind:        domain.PropertyString,
				Placeholder: `e.g., Invoice.*Customer (?P<customer>\w+)`,
				Description: "Regex pattern to match in file content",
			},
		},
	},
	{
		Name:          "hash",
		Label:         "Hash",
		Description:   "Calculate file hash",
		SupportsFiles: true,
		Properties: []domain.Property{
			{
				Name:    "algorithm",
				Label:   "Algorithm",
				Kind:    domain.PropertySelect,
				Default: "md5",
				Options: []domain.Option{
					{Value: "md5", Label: "MD5"},
					{Value: "sha1", Label: "SHA-1"},
					{Value: "sha256", Label: "SHA-256"},
					{Value: "sha512", Label: "SHA-512"},
				},
			},
		},
	},
	{
		Name:          "lastmodified",
		Label:         "Last Modified",
		Description:   "Filter by last modification date",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties:    timeSpanProperties(),
	},
	{
		Name:          "macos_tags",
		Label:         "macOS Tags",
		Description:   "Filter by macOS Finder tags",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties: []domain.Property{
			{
				Name:        "tags",
				Label:       "Tags",
				Kind:        domain.PropertyStringSet,
				Placeholder: "e.g., Important (red), Work (*)",
				Description: `Tags to match. Use * for any color: "* (red)", or any name: "Invoice (*)"`,
			},
		},
	},
	{
		Name:          "mimetype",
		Label:         "MIME Type",
		Description:   "Filter by MIME type",
		SupportsFiles: true,
		Properties: []domain.Property{
			{
				Name:        "types",
				Label:       "MIME Types",
				Kind:        domain.PropertyStringSet,
				Placeholder: "e.g., image, application/pdf",
				Description: `MIME types to match (e.g., "image", "application/pdf")`,
			},
		},
	},
	{
		Name:          "name",
		Label:         "Name",
		Description:   "Filter by file/folder name",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties: []domain.Property{
			{
				Name:        "match",
				Label:       "Match Pattern",
				Kind:        domain.PropertyString,
				Default:     "*",
				Placeholder: "e.g., {year}-{month}-*",
				Description: "Simplematch pattern to match the name",
			},
			{Name: "startswith", Label: "Starts With", Kind: domain.PropertyStringSet, Placeholder: "e.g., Invoice, Order"},
			{Name: "contains", Label: "Contains", Kind: domain.PropertyStringSet, Placeholder: "e.g., important, urgent"},
			{Name: "endswith", Label: "Ends With", Kind: domain.PropertyStringSet, Placeholder: "e.g., _backup, _old"},
			{Name: "case_sensitive", Label: "Case Sensitive", Kind: domain.PropertyBoolean, Default: true},
		},
	},
	{
		Name:          "python",
		Label:         "Python Code",
		Description:   "Custom Python code filter",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties: []domain.Property{
			{
				Name:        "code",
				Label:       "Python Code",
				Kind:        domain.PropertyCode,
				Placeholder: `return {"result": path.stem[::-1]}`,
				Description: "Python code that returns True/False or a dict with values",
			},
		},
	},
	{
		Name:          "regex",
		Label:         "Regex",
		Description:   "Match filename with regular expression",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties: []domain.Property{
			{
				Name:        "pattern",
				Label:       "Pattern",
				Kind:        domain.PropertyString,
				Required:    true,
				Placeholder: `e.g., ^RG(?P<number>\d{12})-sig\.pdf$`,
				Description: "Regular expression pattern to match",
			},
		},
	},
	{
		Name:          "size",
		Label:         "Size",
		Description:   "Filter by file or folder size",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties: []domain.Property{
			{
				Name:        "conditions",
				Label:       "Size Conditions",
				Kind:        domain.PropertyString,
				Placeholder: `e.g., "> 1 MB, < 10 GB"`,
				Description: `Size condition (e.g., "> 500 MB", "< 20k", ">= 1 GB, < 5 GB")`,
			},
		},
	},
}
