package macro

// fragments are commands defined as formula source, parsed at each use.
var fragments = map[string]string{
	"ldots":     `\mathinner{\ldotp\ldotp\ldotp}`,
	"cdots":     `\mathinner{\cdotp\cdotp\cdotp}`,
	"dots":      `\ldots`,
	"hdots":     `\ldots`,
	"dotsc":     `\ldots`,
	"dotsb":     `\cdots`,
	"dotsm":     `\cdots`,
	"neq":       `\not=`,
	"ne":        `\not=`,
	"notin":     `\not\in`,
	"iff":       `\;\Longleftrightarrow\;`,
	"implies":   `\;\Longrightarrow\;`,
	"impliedby": `\;\Longleftarrow\;`,
	"TeX":       `\text{T}\kern-.1667em\raisebox{-.5ex}{E}\kern-.125em\text{X}`,
	"LaTeX":     `\text{L}\kern-.36em\raisebox{.21em}{$\scriptstyle\text{A}$}\kern-.15em\TeX`,
}
