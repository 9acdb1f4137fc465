package link

import "strings"

// Namespace is one of MediaWiki's standard content namespaces. Matching the
// string form (from a /wiki/Namespace:Page href) is case-insensitive with
// underscores as the word separator, e.g. "main_talk", "category_talk".
type Namespace int

const (
	NamespaceMain Namespace = iota
	NamespaceTalk
	NamespaceUser
	NamespaceUserTalk
	NamespaceProject
	NamespaceProjectTalk
	NamespaceFile
	NamespaceFileTalk
	NamespaceMediaWiki
	NamespaceMediaWikiTalk
	NamespaceTemplate
	NamespaceTemplateTalk
	NamespaceHelp
	NamespaceHelpTalk
	NamespaceCategory
	NamespaceCategoryTalk
)

//nolint:gochecknoglobals
var namespaceNames = map[Namespace]string{
	NamespaceMain:          "main",
	NamespaceTalk:          "talk",
	NamespaceUser:          "user",
	NamespaceUserTalk:      "user_talk",
	NamespaceProject:       "project",
	NamespaceProjectTalk:   "project_talk",
	NamespaceFile:          "file",
	NamespaceFileTalk:      "file_talk",
	NamespaceMediaWiki:     "mediawiki",
	NamespaceMediaWikiTalk: "mediawiki_talk",
	NamespaceTemplate:      "template",
	NamespaceTemplateTalk:  "template_talk",
	NamespaceHelp:          "help",
	NamespaceHelpTalk:      "help_talk",
	NamespaceCategory:      "category",
	NamespaceCategoryTalk:  "category_talk",
}

// aliases maps the exact MediaWiki namespace prefixes (as they appear before
// the ':' in a wiki link) onto the Namespace they represent.
//
//nolint:gochecknoglobals
var aliases = map[string]Namespace{
	"talk":          NamespaceTalk,
	"main_talk":     NamespaceTalk,
	"user":          NamespaceUser,
	"user_talk":     NamespaceUserTalk,
	"wikipedia":     NamespaceProject,
	"project":       NamespaceProject,
	"wikipedia_talk": NamespaceProjectTalk,
	"project_talk":  NamespaceProjectTalk,
	"file":          NamespaceFile,
	"image":         NamespaceFile,
	"file_talk":     NamespaceFileTalk,
	"mediawiki":     NamespaceMediaWiki,
	"mediawiki_talk": NamespaceMediaWikiTalk,
	"template":      NamespaceTemplate,
	"template_talk": NamespaceTemplateTalk,
	"help":          NamespaceHelp,
	"help_talk":     NamespaceHelpTalk,
	"category":      NamespaceCategory,
	"category_talk": NamespaceCategoryTalk,
}

// String returns the canonical namespace identifier, e.g. "category_talk".
func (n Namespace) String() string {
	if s, ok := namespaceNames[n]; ok {
		return s
	}
	return "main"
}

// namespaceFromString resolves a namespace prefix (as found before the ':'
// in a /wiki/ href) case-insensitively, with underscores as separators.
func namespaceFromString(s string) (Namespace, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	ns, ok := aliases[key]
	return ns, ok
}
