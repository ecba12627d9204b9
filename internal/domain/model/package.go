package model

// PackageType is the course access tier tag stored in courses.packageType.
type PackageType string

const (
	PackageElite   PackageType = "elite"
	PackageCreator PackageType = "creator"
	PackagePrime   PackageType = "prime"
	PackageMaster  PackageType = "master"

	// Legacy tags replaced by the tier set above.
	PackagePremium PackageType = "premium"
	PackageSupreme PackageType = "supreme"
)

// Rank orders tiers elite < creator < prime < master. Unknown tags rank 0.
func (p PackageType) Rank() int {
	switch p {
	case PackageElite:
		return 1
	case PackageCreator:
		return 2
	case PackagePrime:
		return 3
	case PackageMaster:
		return 4
	default:
		return 0
	}
}

// HighestPackage returns the highest ranked tier among types. The first
// occurrence wins on ties; tags ranked 0 are never selected.
func HighestPackage(types []PackageType) (PackageType, bool) {
	var (
		best     PackageType
		bestRank int
	)
	for _, t := range types {
		if r := t.Rank(); r > bestRank {
			best, bestRank = t, r
		}
	}
	return best, bestRank > 0
}

// PackageRemapRule rewrites one tag. CourseLimit is derived from From.
type PackageRemapRule struct {
	From        PackageType
	To          PackageType
	CourseLimit int
}

// PackageRemap is a finite, ordered, partial function over package tags.
type PackageRemap []PackageRemapRule

// Lookup returns the rule for tag; ok is false when the tag is unmapped.
func (m PackageRemap) Lookup(tag PackageType) (rule PackageRemapRule, ok bool) {
	for _, r := range m {
		if r.From == tag {
			return r, true
		}
	}
	return PackageRemapRule{}, false
}

// Sources lists the tags the remap rewrites, in rule order.
func (m PackageRemap) Sources() []PackageType {
	out := make([]PackageType, 0, len(m))
	for _, r := range m {
		out = append(out, r.From)
	}
	return out
}

// Inverse maps every target back to its source. Course limits are not
// reconstructible and are dropped.
func (m PackageRemap) Inverse() PackageRemap {
	out := make(PackageRemap, 0, len(m))
	for _, r := range m {
		out = append(out, PackageRemapRule{From: r.To, To: r.From})
	}
	return out
}
