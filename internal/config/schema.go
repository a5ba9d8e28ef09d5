package config

// Shape tells how a section's values merge.
type Shape int

const (
	// Flat sections map setting names to values.
	Flat Shape = iota
	// Nested sections map item names to item records.
	Nested
)

func (s Shape) String() string {
	if s == Nested {
		return "nested"
	}
	return "flat"
}

// Section names a top-level configuration section.
type Section string

const (
	SectionGeneral       Section = "general"
	SectionBootstrap     Section = "bootstrap"
	SectionQemu          Section = "qemu"
	SectionPlaybooks     Section = "playbooks"
	SectionKeys          Section = "keys"
	SectionLXCTemplates  Section = "lxc_templates"
	SectionLXCProfiles   Section = "lxc_profiles"
	SectionSharedFolders Section = "shared_folders"
)

// FlatSections lists the flat sections in document order.
var FlatSections = []Section{SectionGeneral, SectionBootstrap, SectionQemu}

// NestedSections lists the nested sections in document order.
var NestedSections = []Section{
	SectionPlaybooks,
	SectionKeys,
	SectionLXCTemplates,
	SectionLXCProfiles,
	SectionSharedFolders,
}

// Shape returns the shape of s and whether s is a known section.
func (s Section) Shape() (Shape, bool) {
	for _, f := range FlatSections {
		if f == s {
			return Flat, true
		}
	}
	for _, n := range NestedSections {
		if n == s {
			return Nested, true
		}
	}
	return Flat, false
}

// Item record fields.
const (
	ItemSkip       = "skip"
	ItemPath       = "path"
	ItemParameters = "parameters"
)

// Setting declares one value of a flat section together with its default.
type Setting struct {
	Section Section
	Key     string
	Default any
}

// The default table. A nil Default means "unset"; callers decide what
// unset means (RequiredMinimalVersion falls back to the running version).
var (
	SettingCompression            = Setting{SectionGeneral, "edi_compression", "xz"}
	SettingRequiredMinimalVersion = Setting{SectionGeneral, "edi_required_minimal_edi_version", nil}
	SettingNetworkInterfaceName   = Setting{SectionGeneral, "edi_lxc_network_interface_name", "lxcif0"}
	SettingManagementUserName     = Setting{SectionGeneral, "edi_config_management_user_name", "edicfgmgmt"}

	SettingBootstrapRepository    = Setting{SectionBootstrap, "repository", nil}
	SettingBootstrapArchitecture  = Setting{SectionBootstrap, "architecture", nil}
	SettingBootstrapTool          = Setting{SectionBootstrap, "tool", "debootstrap"}
	SettingBootstrapRepositoryKey = Setting{SectionBootstrap, "repository_key", nil}

	SettingQemuRepository    = Setting{SectionQemu, "repository", nil}
	SettingQemuPackageName   = Setting{SectionQemu, "package", "qemu-user-static"}
	SettingQemuRepositoryKey = Setting{SectionQemu, "repository_key", nil}
)

// Settings lists every declared setting.
var Settings = []Setting{
	SettingCompression,
	SettingRequiredMinimalVersion,
	SettingNetworkInterfaceName,
	SettingManagementUserName,
	SettingBootstrapRepository,
	SettingBootstrapArchitecture,
	SettingBootstrapTool,
	SettingBootstrapRepositoryKey,
	SettingQemuRepository,
	SettingQemuPackageName,
	SettingQemuRepositoryKey,
}
