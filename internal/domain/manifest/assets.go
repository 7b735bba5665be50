package manifest

// AssetObject is the content descriptor of one asset
type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// AssetIndex maps logical asset paths to content descriptors
type AssetIndex struct {
	Objects        map[string]AssetObject `json:"objects"`
	Virtual        bool                   `json:"virtual,omitempty"`
	MapToResources bool                   `json:"map_to_resources,omitempty"`
}

// ObjectResolver maps a content hash to its location in the asset store
type ObjectResolver interface {
	ObjectPath(hash string) string
}

// ObjectPath resolves a logical asset name to its store file, or "" when the
// index does not contain it.
func (idx *AssetIndex) ObjectPath(store ObjectResolver, name string) string {
	if idx == nil {
		return ""
	}
	obj, ok := idx.Objects[name]
	if !ok || obj.Hash == "" {
		return ""
	}
	return store.ObjectPath(obj.Hash)
}
