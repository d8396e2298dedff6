package types

//
// Listing key - identifies one directory listing of one host
//
type ListingKey struct {
	Host string
	Path string
}
func (k ListingKey) String() string {
	return k.Host + `:` + k.Path
}
func (k ListingKey) Less(other ListingKey) bool {
	if k.Host < other.Host {
		return true
	}
	if k.Host == other.Host {
		return k.Path < other.Path
	}
	return false
}
