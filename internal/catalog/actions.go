package catalog

import "github.com/doeshing/organize-desk/internal/domain"

const defaultRenameTemplate = "{name} {counter}{extension}"

func onConflictProperty(newLabel, existingLabel string) domain.Property {
	return domain.Property{
		Name:    "on_conflict",
		Label:   "On Conflict",
		Kind:    domain.PropertySelect,
		Default: "rename_new",
		Options: []domain.Option{
			{Value: "skip", Label: "Skip"},
			{Value: "overwrite", Label: "Overwrite"},
			{Value: "trash", Label: "Move existing to Trash"},
			{Value: "rename_new", Label: newLabel},
			{Value: "rename_existing", Label: existingLabel},
		},
	}
}

func renameTemplateProperty(description string) domain.Property {
	return domain.Property{
		Name:        "rename_template",
		Label:       "Rename Template",
		Kind:        domain.PropertyString,
		Default:     defaultRenameTemplate,
		Description: description,
	}
}

func autodetectFolderProperty() domain.Property {
	return domain.Property{Name: "autodetect_folder", Label: "Auto-detect Folder", Kind: domain.PropertyBoolean, Default: true}
}

func runInSimulationProperty() domain.Property {
	return domain.Property{
		Name:        "run_in_simulation",
		Label:       "Run in Simulation",
		Kind:        domain.PropertyBoolean,
		Default:     false,
		Description: "Whether to run this action during simulation",
	}
}

func destProperty(placeholder, description string) domain.Property {
	return domain.Property{
		Name:        "dest",
		Label:       "Destination",
		Kind:        domain.PropertyString,
		Required:    true,
		Placeholder: placeholder,
		Description: description,
	}
}

var actionDefinitions = []domain.Definition{
	{
		Name:          "confirm",
		Label:         "Confirm",
		Description:   "Ask for confirmation before continuing",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties: []domain.Property{
			{
				Name:        "msg",
				Label:       "Message",
				Kind:        domain.PropertyString,
				Default:     "Continue?",
				Placeholder: "Delete {name}?",
				Description: "Confirmation message to display",
			},
			{Name: "default", Label: "Default", Kind: domain.PropertyBoolean, Default: true, Description: "Default answer if Enter is pressed"},
		},
	},
	{
		Name:          "copy",
		Label:         "Copy",
		Description:   "Copy file or folder to a new location",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties: []domain.Property{
			destProperty("~/Documents/{extension.upper()}/", "Destination path (use trailing slash for folder)"),
			onConflictProperty("Rename new file", "Rename existing file"),
			renameTemplateProperty("Template for renaming on conflict"),
			autodetectFolderProperty(),
			{
				Name:    "continue_with",
				Label:   "Continue With",
				Kind:    domain.PropertySelect,
				Default: "copy",
				Options: []domain.Option{
					{Value: "copy", Label: "Copied file"},
					{Value: "original", Label: "Original file"},
				},
			},
		},
	},
	{
		Name:          "delete",
		Label:         "Delete",
		Description:   "Permanently delete file or folder",
		SupportsFiles: true,
		SupportsDirs:  true,
	},
	{
		Name:          "echo",
		Label:         "Echo",
		Description:   "Print a message to the output",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties: []domain.Property{
			{
				Name:        "msg",
				Label:       "Message",
				Kind:        domain.PropertyString,
				Required:    true,
				Placeholder: "Found: {path}",
				Description: "Message to print (supports placeholders)",
			},
		},
	},
	{
		Name:          "hardlink",
		Label:         "Hardlink",
		Description:   "Create a hard link",
		SupportsFiles: true,
		Properties: []domain.Property{
			destProperty("~/Links/{name}", "Destination path for the hard link"),
			onConflictProperty("Rename new", "Rename existing"),
			renameTemplateProperty(""),
			autodetectFolderProperty(),
		},
	},
	{
		Name:          "macos_tags",
		Label:         "macOS Tags",
		Description:   "Add macOS Finder tags",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties: []domain.Property{
			{
				Name:        "tags",
				Label:       "Tags",
				Kind:        domain.PropertyStringSet,
				Required:    true,
				Placeholder: "Important (red), Archive",
				Description: "Tags to add (optionally with color: red, orange, yellow, green, blue, purple, gray)",
			},
		},
	},
	{
		Name:          "move",
		Label:         "Move",
		Description:   "Move file or folder to a new location",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties: []domain.Property{
			destProperty("~/Documents/{extension.upper()}/", "Destination path (use trailing slash for folder)"),
			onConflictProperty("Rename new file", "Rename existing file"),
			renameTemplateProperty("Template for renaming on conflict"),
			autodetectFolderProperty(),
		},
	},
	{
		Name:          "python",
		Label:         "Python Code",
		Description:   "Execute custom Python code",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties: []domain.Property{
			{
				Name:        "code",
				Label:       "Python Code",
				Kind:        domain.PropertyCode,
				Required:    true,
				Placeholder: `print("Processing:", path)`,
				Description: "Python code to execute",
			},
			runInSimulationProperty(),
		},
	},
	{
		Name:          "rename",
		Label:         "Rename",
		Description:   "Rename file or folder",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties: []domain.Property{
			{
				Name:        "name",
				Label:       "New Name",
				Kind:        domain.PropertyString,
				Required:    true,
				Placeholder: "{name}.{extension.lower()}",
				Description: "New name for the file/folder (supports placeholders)",
			},
			onConflictProperty("Rename new", "Rename existing"),
			renameTemplateProperty(""),
		},
	},
	{
		Name:          "shell",
		Label:         "Shell Command",
		Description:   "Execute a shell command",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties: []domain.Property{
			{
				Name:        "command",
				Label:       "Command",
				Kind:        domain.PropertyString,
				Required:    true,
				Placeholder: `open "{path}"`,
				Description: "Shell command to execute (supports placeholders)",
			},
			runInSimulationProperty(),
			{
				Name:        "ignore_errors",
				Label:       "Ignore Errors",
				Kind:        domain.PropertyBoolean,
				Default:     false,
				Description: "Continue even if the command fails",
			},
		},
	},
	{
		Name:          "symlink",
		Label:         "Symlink",
		Description:   "Create a symbolic link",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties: []domain.Property{
			destProperty("~/Links/{name}", "Destination path for the symbolic link"),
			onConflictProperty("Rename new", "Rename existing"),
			renameTemplateProperty(""),
			autodetectFolderProperty(),
		},
	},
	{
		Name:          "trash",
		Label:         "Trash",
		Description:   "Move file or folder to trash",
		SupportsFiles: true,
		SupportsDirs:  true,
	},
	{
		Name:          "write",
		Label:         "Write",
		Description:   "Write to a text file",
		SupportsFiles: true,
		SupportsDirs:  true,
		Properties: []domain.Property{
			{
				Name:        "outfile",
				Label:       "Output File",
				Kind:        domain.PropertyString,
				Required:    true,
				Placeholder: "./results.txt",
				Description: "Path to the output file",
			},
			{
				Name:        "text",
				Label:       "Text",
				Kind:        domain.PropertyString,
				Required:    true,
				Placeholder: "{size.traditional} -- {relative_path}",
				Description: "Text to write (supports placeholders)",
			},
			{
				Name:    "mode",
				Label:   "Mode",
				Kind:    domain.PropertySelect,
				Default: "append",
				Options: []domain.Option{
					{Value: "append", Label: "Append"},
					{Value: "prepend", Label: "Prepend"},
					{Value: "overwrite", Label: "Overwrite"},
				},
			},
			{Name: "newline", Label: "Newline", Kind: domain.PropertyString, Default: `\n`, Description: "Newline character to use"},
			{
				Name:        "clear_before_first_write",
				Label:       "Clear Before First Write",
				Kind:        domain.PropertyBoolean,
				Default:     false,
				Description: "Clear the file before the first write in a run",
			},
		},
	},
}
