/*
Package sce is a sound-change rule engine: it tokenizes orthographic
text into graphemes, parses a small rule-DSL for describing sound
changes (targets, replacements, environments, exceptions, flags), and
drives a ruleset of such rules over a batch of words.

Package structure is as follows:

■ graph: grapheme tokenizer — text to/from a flanked token sequence.

■ cats: the category store — named, ordered collections of graphemes.

■ pattern: the rule-DSL pattern language — lexing and structuring of
target/replacement/environment text into atoms.

■ word: the word model — a mutable token sequence, matched via the
Matcher seam that rule.Engine implements.

■ rule: the matcher and the Rule object — parsing rule source,
matching targets against a word, and applying epenthesis, deletion,
substitution, metathesis and category correspondence.

■ ruleset: the driver — parsing a ruleset source into category edits
and rules, and running the newest-first, repeat/age application loop.

The root package wraps these into three entry points: Tokenize,
ParseRuleset, and ApplyRuleset.

License

Governed by a 3-Clause BSD license. License file may be found in the
root folder of this module.
*/
package sce
