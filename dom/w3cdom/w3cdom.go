/*
Package w3cdom defines an interface type for W3C Document Object Models,
together with two read-only views over the engine's node tree.

See also https://www.w3schools.com/XML/dom_intro.asp

The logical view presents the tree as authored (light DOM children, shadow
roots kept apart). The composed view presents the tree as rendered, i.e.
after slot distribution. Collaborating modules (style scoping, event
retargeting) consume whichever view they need through the same interface.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package w3cdom

import (
	"golang.org/x/net/html"
)

// Node is a read-only node of either view. Which children, parent and
// siblings a node reports depends on the view that produced it; kind, name,
// attributes and character data are the same in both.
type Node interface {
	// NodeType maps the node's kind onto the x/net/html node types.
	// Shadow roots and fragments report html.DocumentNode.
	NodeType() html.NodeType
	NodeName() string  // tag name, or "#text", "#comment", ...
	NodeValue() string // character data of text and comments, empty otherwise

	ParentNode() Node
	FirstChild() Node
	NextSibling() Node
	HasChildNodes() bool
	ChildNodes() NodeList // all children
	Children() NodeList   // element children only

	HasAttributes() bool
	Attributes() NamedNodeMap

	// TextContent concatenates the character data of all text descendants.
	TextContent() (string, error)
}

// NodeList is an ordered list of nodes of one view.
type NodeList interface {
	Length() int
	Item(int) Node
	String() string
}

// Attr is a single attribute of an element.
type Attr interface {
	Namespace() string
	Key() string
	Value() string
}

// NamedNodeMap holds the attributes of an element, in source order.
type NamedNodeMap interface {
	Length() int
	Item(int) Attr
	GetNamedItem(string) Attr
}
