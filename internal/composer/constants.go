package composer

// serverAPIs is the static catalog of server endpoints and helpers.*
// client methods listed under <SERVER_APIS> (spec.md §4.2). It is verbatim
// constant per deployment — not assembled from fragments at call time, per
// spec.md §9's "prompt constants as data, not code" design note.
const serverAPIs = `Available server endpoints and client helpers. Use these exactly as described; do not invent endpoints.

ENDPOINTS

POST /api/page/{name}/transform
  description: submit a natural-language instruction to mutate the current page
  request: {"message": string}
  response: {"html": string, "changeCount": number}

GET /api/page/{name}
  description: fetch the current stripped HTML for a page
  request: (none)
  response: {"html": string}

POST /api/scripts/{id}
  description: invoke a server-side script by id (see <SERVER_SCRIPTS> for the configured catalog)
  request: script-specific, see its "variables" list
  response: script-specific, see its "response" description

CLIENT HELPERS (helpers.*)

helpers.fetchJSON(url, options)
  description: fetch a URL and parse the response body as JSON
  request: {url: string, options?: {method?: string, headers?: object, body?: any}}
  response: parsed JSON value

helpers.postScript(id, variables)
  description: invoke a configured server-side script and await its response
  request: {id: string, variables: object}
  response: script-specific JSON value

helpers.showToast(message, kind)
  description: display a transient notification in the page shell
  request: {message: string, kind?: "info"|"success"|"error"}
  response: void
`

// transformInstr is the fixed instruction block appended to every user
// message (spec.md §4.2). It is a verbatim constant, never reassembled
// piecemeal.
const transformInstr = `INSTRUCTIONS FOR THIS TRANSFORMATION

- Locked elements (data-locked) must never be removed, and their own
  attributes must never change, but their inner text and any unlocked
  children may still be edited.
- Every response must begin by updating the hidden #thoughts element with a
  brief chain-of-thought note before any other changes.
- Chat etiquette: append one message for the user and one for SynthOS to
  #chatMessages, using this shape for each:
  <div class="chat-message chat-message--user"><p>User: <message text></p></div>
  <div class="chat-message chat-message--assistant"><p>SynthOS: <reply text></p></div>
- If asked to clear the chat, keep the very first SynthOS greeting message
  and delete every other message in #chatMessages.
- If the requested change is an animation, game, or anything that wants the
  full viewport, add the "full-viewer" class to .viewer-panel; remove it
  otherwise.
- Respond with a JSON array of change operations and nothing else. Each
  operation is one of:
  {"op":"update","nodeId":"<id>","html":"<new inner html>"}
  {"op":"replace","nodeId":"<id>","html":"<new outer html>"}
  {"op":"delete","nodeId":"<id>"}
  {"op":"insert","parentId":"<id>","position":"prepend"|"append"|"before"|"after","html":"<new html>"}
  {"op":"style-element","nodeId":"<id>","style":"<css declarations>"}

  Example:
  [
    {"op":"update","nodeId":"12","html":"Hello!"},
    {"op":"insert","parentId":"3","position":"append","html":"<p>New paragraph</p>"}
  ]

- Return ONLY the JSON array. No prose, no markdown fences, no explanation.
`

// repairInstr is the fixed instruction for the repair user message
// (spec.md §4.6 step 3).
const repairInstr = `Some of your previous operations could not be applied because the nodes
they targeted no longer exist in the current page (they were removed or
replaced by an earlier operation in your own change list). The page shown
above under <CURRENT_PAGE> has been freshly re-annotated with valid node
ids. Using <FAILED_OPERATIONS> as context for what you were trying to
accomplish, return a corrected JSON array of change operations targeting the
new ids, or an empty JSON array "[]" if nothing further is needed. Return
ONLY the JSON array.
`
