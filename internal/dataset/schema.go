package dataset

import "strings"

// Canonical column keys of the export schema. Source batches spell these
// in several ways; canonicalColumn folds the known variants.
const (
	colLink      = "link"
	colType      = "post_type"
	colLikes     = "likes"
	colComments  = "comments"
	colFollowers = "followers"
	colCaption   = "caption"
	colDate      = "date"
	colImage     = "image"
)

// columnAliases maps lowercased source header spellings to canonical keys.
// Unknown headers are preserved verbatim in PostRecord.Extra but unused.
var columnAliases = map[string]string{
	"postlink": colLink,
	"link":     colLink,
	"url":      colLink,

	"posttürü": colType,
	"postturu": colType,
	"posttype": colType,
	"type":     colType,

	"beğenisayısı": colLikes,
	"begenisayisi": colLikes,
	"likes":        colLikes,
	"likecount":    colLikes,

	"yorumsayısı":  colComments,
	"yorumsayisi":  colComments,
	"comments":     colComments,
	"commentcount": colComments,

	"takipçi":        colFollowers,
	"takipci":        colFollowers,
	"takipçisayısı":  colFollowers,
	"takipcisayisi":  colFollowers,
	"followers":      colFollowers,
	"followercount":  colFollowers,

	"caption":  colCaption,
	"açıklama": colCaption,
	"aciklama": colCaption,

	"tarih":     colDate,
	"date":      colDate,
	"timestamp": colDate,

	"imageurl": colImage,
	"image":    colImage,
}

// canonicalColumn resolves a source header to its canonical key. The second
// return reports whether the header belongs to the canonical schema.
func canonicalColumn(header string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(header))
	canonical, ok := columnAliases[key]
	if !ok {
		return strings.TrimSpace(header), false
	}
	return canonical, true
}

// Tag table columns: profile identifier plus up to three free-form tag
// dimensions.
const (
	tagColProfile = "profile"
	tagColRegion  = "region"
	tagColStatus  = "status"
	tagColCity    = "city"
)

var tagColumnAliases = map[string]string{
	"profil":  tagColProfile,
	"profile": tagColProfile,
	"name":    tagColProfile,

	"tag1":   tagColRegion,
	"region": tagColRegion,
	"bölge":  tagColRegion,
	"bolge":  tagColRegion,

	"tag2":   tagColStatus,
	"status": tagColStatus,
	"durum":  tagColStatus,

	"tag3":  tagColCity,
	"city":  tagColCity,
	"şehir": tagColCity,
	"sehir": tagColCity,
}

func canonicalTagColumn(header string) (string, bool) {
	canonical, ok := tagColumnAliases[strings.ToLower(strings.TrimSpace(header))]
	return canonical, ok
}
