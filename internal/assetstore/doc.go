// Package assetstore owns all filesystem access for one asset-class root.
//
// Each owner gets at most one folder directly under the root, named by
// naming.EncodeFolder. The store confines its side effects to that single
// root; it has no cross-root knowledge and no database knowledge.
package assetstore
